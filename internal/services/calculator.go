package services

import (
	"context"
	"math"
	"time"

	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/platform/obs"
)

// CalculatorConfig carries the business-rule constants. The franchise
// is a one-way allowance; the round-trip allowance is twice that.
type CalculatorConfig struct {
	DepotPostalCode string
	FranchiseKm     float64
	RatePerKm       float64
}

// Calculator combines the depot coordinate, a destination resolution
// and a distance estimate into a priced result.
//
// It is the error boundary of the pipeline: every resolver or
// estimator failure is converted into a structured CALCULATION_ERROR
// instead of propagating.
type Calculator struct {
	resolver  *Resolver
	estimator *Estimator
	cfg       CalculatorConfig
}

func NewCalculator(resolver *Resolver, estimator *Estimator, cfg CalculatorConfig) *Calculator {
	return &Calculator{
		resolver:  resolver,
		estimator: estimator,
		cfg:       cfg,
	}
}

// CalculateByPostalCode prices a delivery to the given destination CEP.
func (c *Calculator) CalculateByPostalCode(ctx context.Context, cep string) (_ domain.FeeResult, err error) {
	defer obs.Time(ctx, "calculator.CalculateByPostalCode")(&err)

	destination, err := c.resolver.ResolvePostalCode(ctx, cep)
	if err != nil {
		return domain.FeeResult{}, calculationError(err)
	}

	return c.price(ctx, destination, FormatPostalCode(cep))
}

// CalculateByAddress prices a delivery to a free-form address.
func (c *Calculator) CalculateByAddress(ctx context.Context, address string) (_ domain.FeeResult, err error) {
	defer obs.Time(ctx, "calculator.CalculateByAddress")(&err)

	destination, err := c.resolver.ResolveAddress(ctx, address)
	if err != nil {
		return domain.FeeResult{}, calculationError(err)
	}

	return c.price(ctx, destination, address)
}

func (c *Calculator) price(ctx context.Context, destination domain.Coordinate, input string) (domain.FeeResult, error) {
	origin, err := c.resolver.ResolvePostalCode(ctx, c.cfg.DepotPostalCode)
	if err != nil {
		return domain.FeeResult{}, calculationError(err)
	}

	estimate := c.estimator.Estimate(ctx, origin, destination)

	oneWayKm := estimate.Meters / 1000.0
	roundTripKm := oneWayKm * 2

	var excessKm, fee float64
	if oneWayKm > c.cfg.FranchiseKm {
		excessKm = roundTripKm - c.cfg.FranchiseKm*2
		fee = excessKm * c.cfg.RatePerKm
	}

	return domain.FeeResult{
		Origin:           origin,
		Destination:      destination,
		DestinationInput: input,
		Estimate:         estimate,
		OneWayKm:         round2(oneWayKm),
		RoundTripKm:      round2(roundTripKm),
		EstimatedMinutes: math.Round(estimate.Seconds / 60.0),
		ExcessKm:         round2(excessKm),
		Fee:              round2(fee),
		Timestamp:        time.Now(),
	}, nil
}

// FranchiseKm reports the configured one-way allowance.
func (c *Calculator) FranchiseKm() float64 { return c.cfg.FranchiseKm }

// RatePerKm reports the configured per-kilometer rate.
func (c *Calculator) RatePerKm() float64 { return c.cfg.RatePerKm }

// DepotPostalCode reports the configured depot CEP.
func (c *Calculator) DepotPostalCode() string { return c.cfg.DepotPostalCode }

func calculationError(err error) error {
	return domain.NewCodedError(domain.CodeCalculationError, err.Error())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
