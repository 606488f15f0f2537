package dto

import "time"

type CalculateRequest struct {
	Address    *string `json:"address"`
	PostalCode *string `json:"postal_code"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type OriginResponse struct {
	PostalCode  string      `json:"postal_code"`
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}

type DestinationResponse struct {
	PostalCode   string      `json:"postal_code,omitempty"`
	AddressInput string      `json:"address_input,omitempty"`
	Address      string      `json:"address"`
	City         string      `json:"city,omitempty"`
	Region       string      `json:"region,omitempty"`
	Coordinates  Coordinates `json:"coordinates"`
}

type DistanceResponse struct {
	OneWayKm         float64 `json:"one_way_km"`
	RoundTripKm      float64 `json:"round_trip_km"`
	EstimatedMinutes float64 `json:"estimated_minutes"`
	Method           string  `json:"method"`
}

type CalculationResponse struct {
	FranchiseOneWayKm    float64 `json:"franchise_one_way_km"`
	FranchiseRoundTripKm float64 `json:"franchise_round_trip_km"`
	ExcessKm             float64 `json:"excess_km"`
	RatePerKm            float64 `json:"rate_per_km"`
	Fee                  float64 `json:"fee"`
}

type FeeResponse struct {
	Status      string              `json:"status"`
	Origin      OriginResponse      `json:"origin"`
	Destination DestinationResponse `json:"destination"`
	Distance    DistanceResponse    `json:"distance"`
	Calculation CalculationResponse `json:"calculation"`
	Timestamp   time.Time           `json:"timestamp"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ClearCacheResponse struct {
	Status          string    `json:"status"`
	Message         string    `json:"message"`
	PreviousEntries int       `json:"previous_entries"`
	Timestamp       time.Time `json:"timestamp"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	CacheSize int               `json:"cache_size"`
	Services  map[string]string `json:"services"`
}
