//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/souvenir-registry/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type manufacturerPayload struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type souvenirPayload struct {
	ID             int64   `json:"id,omitempty"`
	Name           string  `json:"name"`
	ManufacturerID int64   `json:"manufacturerId"`
	ProductionDate string  `json:"productionDate"`
	Price          float64 `json:"price"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestSouvenirPortalContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	example := pacttest.ExampleManufacturerPayload()
	requestManufacturer := manufacturerPayload{
		Name:    example["name"].(string),
		Country: example["country"].(string),
	}
	manufacturerMatcher := matchers.Map{
		"id":      matchers.Like(pacttest.ExistingManufacturerID),
		"name":    matchers.Like(requestManufacturer.Name),
		"country": matchers.Like(requestManufacturer.Country),
	}
	souvenirExample := pacttest.ExampleSouvenirPayload()
	souvenirMatcher := matchers.Map{
		"id":             matchers.Like(pacttest.ExistingSouvenirID),
		"name":           matchers.Like(souvenirExample["name"]),
		"manufacturerId": matchers.Like(pacttest.ExistingManufacturerID),
		"productionDate": matchers.Term(souvenirExample["productionDate"].(string), `\d{4}-\d{2}-\d{2}`),
		"price":          matchers.Like(souvenirExample["price"]),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	problemContentType := matchers.S("application/problem+json")

	pact.AddInteraction().
		Given(pacttest.StateRegistryEmpty).
		UponReceiving("a request to register a manufacturer").
		WithRequest("POST", "/v1/manufacturers", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"name":    matchers.Like(requestManufacturer.Name),
				"country": matchers.Like(requestManufacturer.Country),
			})
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(manufacturerMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateManufacturerExists).
		UponReceiving("a request to fetch an existing manufacturer").
		WithRequest("GET", fmt.Sprintf("/v1/manufacturers/%d", pacttest.ExistingManufacturerID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(manufacturerMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateRegistryEmpty).
		UponReceiving("a request for a missing manufacturer").
		WithRequest("GET", fmt.Sprintf("/v1/manufacturers/%d", pacttest.MissingManufacturerID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateManufacturerExists).
		UponReceiving("a request to add a souvenir to an existing manufacturer").
		WithRequest("POST", "/v1/souvenirs", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"name":           matchers.Like(souvenirExample["name"]),
				"manufacturerId": matchers.Like(pacttest.ExistingManufacturerID),
				"productionDate": matchers.Like(souvenirExample["productionDate"]),
				"price":          matchers.Like(souvenirExample["price"]),
			})
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(souvenirMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateRegistryEmpty).
		UponReceiving("a request to add a souvenir for an unknown manufacturer").
		WithRequest("POST", "/v1/souvenirs", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"name":           matchers.Like(souvenirExample["name"]),
				"manufacturerId": matchers.Like(pacttest.MissingManufacturerID),
				"productionDate": matchers.Like(souvenirExample["productionDate"]),
				"price":          matchers.Like(souvenirExample["price"]),
			})
		}).
		WillRespondWith(http.StatusUnprocessableEntity, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/unprocessable-entity"),
				"status": matchers.Like(http.StatusUnprocessableEntity),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCatalogSeeded).
		UponReceiving("a request for manufacturers whose souvenirs all cost at most 10").
		WithRequest("GET", "/v1/reports/manufacturers/by-max-price", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("price", matchers.S("10"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.EachLike(matchers.Map{
				"id":      matchers.Like(pacttest.SecondManufacturerID),
				"name":    matchers.Like("Globex"),
				"country": matchers.Like("UK"),
			}, 1))
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newRegistryClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		created, err := client.CreateManufacturer(ctx, requestManufacturer)
		if err != nil {
			return fmt.Errorf("create manufacturer: %w", err)
		}
		if created == nil || created.ID == 0 {
			return fmt.Errorf("expected created manufacturer ID to be set")
		}

		fetched, err := client.GetManufacturer(ctx, pacttest.ExistingManufacturerID)
		if err != nil {
			return fmt.Errorf("get manufacturer: %w", err)
		}
		if fetched == nil || fetched.ID != pacttest.ExistingManufacturerID {
			return fmt.Errorf("expected manufacturer id %d, got %+v", pacttest.ExistingManufacturerID, fetched)
		}

		if _, err := client.GetManufacturer(ctx, pacttest.MissingManufacturerID); err == nil {
			return fmt.Errorf("expected 404 for manufacturer %d", pacttest.MissingManufacturerID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		souvenir := souvenirPayload{
			Name:           souvenirExample["name"].(string),
			ManufacturerID: pacttest.ExistingManufacturerID,
			ProductionDate: souvenirExample["productionDate"].(string),
			Price:          souvenirExample["price"].(float64),
		}
		saved, err := client.CreateSouvenir(ctx, souvenir)
		if err != nil {
			return fmt.Errorf("create souvenir: %w", err)
		}
		if saved.ManufacturerID != pacttest.ExistingManufacturerID {
			return fmt.Errorf("expected souvenir of manufacturer %d, got %+v", pacttest.ExistingManufacturerID, saved)
		}

		souvenir.ManufacturerID = pacttest.MissingManufacturerID
		if _, err := client.CreateSouvenir(ctx, souvenir); err == nil {
			return fmt.Errorf("expected 422 for unknown manufacturer")
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusUnprocessableEntity {
			return fmt.Errorf("expected 422, got %d", apiErr.Status())
		}

		cheap, err := client.ManufacturersByMaxPrice(ctx, "10")
		if err != nil {
			return fmt.Errorf("manufacturers by max price: %w", err)
		}
		if len(cheap) == 0 {
			return fmt.Errorf("expected at least one manufacturer under the price cap")
		}
		return nil
	})
	require.NoError(t, err)
}

type registryClient struct {
	baseURL    string
	httpClient *http.Client
}

func newRegistryClient(config pactconsumer.MockServerConfig) *registryClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &registryClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *registryClient) CreateManufacturer(ctx context.Context, m manufacturerPayload) (*manufacturerPayload, error) {
	var out manufacturerPayload
	if err := c.do(ctx, http.MethodPost, "/v1/manufacturers", m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *registryClient) GetManufacturer(ctx context.Context, id int64) (*manufacturerPayload, error) {
	var out manufacturerPayload
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/manufacturers/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *registryClient) CreateSouvenir(ctx context.Context, s souvenirPayload) (*souvenirPayload, error) {
	var out souvenirPayload
	if err := c.do(ctx, http.MethodPost, "/v1/souvenirs", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *registryClient) ManufacturersByMaxPrice(ctx context.Context, price string) ([]manufacturerPayload, error) {
	var out []manufacturerPayload
	if err := c.do(ctx, http.MethodGet, "/v1/reports/manufacturers/by-max-price?price="+price, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *registryClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	var req *http.Request
	var err error
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
