package postal

import (
	"context"
	"delivery-fee-service/internal/ports"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ViaCEPClient implements PostalLookup against the public ViaCEP registry.
//
// It normalizes the upstream payload into ports.PostalAddress at the
// boundary; the registry's "erro" flag becomes PostalCodeNotFoundError.
type ViaCEPClient struct {
	session *http.Client
	baseURL string
}

func NewViaCEPClient(baseURL string) *ViaCEPClient {
	return &ViaCEPClient{
		session: &http.Client{Timeout: 5 * time.Second},
		baseURL: baseURL,
	}
}

type viaCEPResponse struct {
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	// ViaCEP has reported this as both a bool and the string "true"
	// across versions; presence alone means "not found".
	Erro json.RawMessage `json:"erro"`
}

// Lookup resolves a digits-only CEP to its registered street address.
func (c *ViaCEPClient) Lookup(ctx context.Context, postalCode string) (ports.PostalAddress, error) {
	endpoint := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, postalCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.PostalAddress{}, fmt.Errorf("create viacep request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return ports.PostalAddress{}, fmt.Errorf("viacep request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.PostalAddress{}, &ports.PostalCodeNotFoundError{PostalCode: postalCode}
	}

	var decoded viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.PostalAddress{}, fmt.Errorf("decode viacep response: %w", err)
	}

	if decoded.Erro != nil {
		return ports.PostalAddress{}, &ports.PostalCodeNotFoundError{PostalCode: postalCode}
	}

	return ports.PostalAddress{
		Street:       decoded.Logradouro,
		Neighborhood: decoded.Bairro,
		City:         decoded.Localidade,
		Region:       decoded.UF,
	}, nil
}

// Probe checks the registry with a known-good CEP (Avenida Paulista).
func (c *ViaCEPClient) Probe(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	endpoint := c.baseURL + "/ws/01310100/json/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.StatusUnreachable
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return ports.StatusUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.StatusDegraded
	}
	return ports.StatusOperational
}
