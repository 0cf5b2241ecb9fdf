package services

import (
  "bytes"
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "io"
  "math/rand"
  "net"
  "net/http"
  "strings"
  "time"

  "github.com/yungbote/dealflow-backend/internal/logger"
  "github.com/yungbote/dealflow-backend/internal/utils"
)

// HarmonicClient talks to the external people/company-intelligence GraphQL
// endpoint. Every caller goes through the same policy: request timeout,
// bounded retry with jittered backoff, and a plain error on exhaustion that
// handlers map to 502.
type HarmonicClient interface {
  GetPersonsByIDs(ctx context.Context, ids []int64) ([]*HarmonicPerson, error)
  GetTeamConnections(ctx context.Context, companyID int64) ([]*TeamConnection, error)
}

type HarmonicLink struct {
  URL string `json:"url"`
}

type HarmonicSocials struct {
  Linkedin *HarmonicLink `json:"linkedin"`
}

type HarmonicPerson struct {
  FullName          string           `json:"fullName"`
  ProfilePictureURL string           `json:"profilePictureUrl"`
  EntityUrn         string           `json:"entityUrn"`
  Socials           *HarmonicSocials `json:"socials"`
  Title             string           `json:"title,omitempty"`
}

type TeamConnection struct {
  Email string `json:"email"`
  Name  string `json:"name"`
}

type harmonicClient struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  httpClient *http.Client

  maxRetries int
}

func NewHarmonicClient(log *logger.Logger) (HarmonicClient, error) {
  apiKey := utils.GetEnv("HARMONIC_API_KEY", "", log)
  if apiKey == "" {
    return nil, fmt.Errorf("missing HARMONIC_API_KEY")
  }

  baseURL := utils.GetEnv("HARMONIC_BASE_URL", "https://api.harmonic.ai", log)
  timeoutSec := utils.GetEnvAsInt("HARMONIC_TIMEOUT_SECONDS", 15, log)
  if timeoutSec <= 0 {
    timeoutSec = 15
  }
  maxRetries := utils.GetEnvAsInt("HARMONIC_MAX_RETRIES", 2, log)
  if maxRetries < 0 {
    maxRetries = 0
  }

  return &harmonicClient{
    log:        log.With("service", "HarmonicClient"),
    baseURL:    strings.TrimRight(baseURL, "/"),
    apiKey:     apiKey,
    httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
    maxRetries: maxRetries,
  }, nil
}

type harmonicHTTPError struct {
  StatusCode int
  Body       string
}

func (e *harmonicHTTPError) Error() string {
  return fmt.Sprintf("harmonic http %d: %s", e.StatusCode, e.Body)
}

func isRetryableHTTP(code int) bool {
  if code == 408 || code == 429 {
    return true
  }
  if code >= 500 && code <= 599 {
    return true
  }
  return false
}

func isRetryableErr(err error) bool {
  if err == nil {
    return false
  }
  var netErr net.Error
  if errors.As(err, &netErr) {
    return netErr.Timeout()
  }
  var httpErr *harmonicHTTPError
  if errors.As(err, &httpErr) {
    return isRetryableHTTP(httpErr.StatusCode)
  }
  return false
}

type graphqlRequest struct {
  Query     string                 `json:"query"`
  Variables map[string]interface{} `json:"variables,omitempty"`
}

func (hc *harmonicClient) do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
  payload, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
  if err != nil {
    return fmt.Errorf("marshal graphql request: %w", err)
  }

  var lastErr error
  for attempt := 0; attempt <= hc.maxRetries; attempt++ {
    if attempt > 0 {
      if ctx.Err() != nil {
        return ctx.Err()
      }
      backoff := time.Duration(200*(1<<uint(attempt-1))) * time.Millisecond
      backoff += time.Duration(rand.Intn(100)) * time.Millisecond
      select {
      case <-ctx.Done():
        return ctx.Err()
      case <-time.After(backoff):
      }
    }

    lastErr = hc.doOnce(ctx, payload, out)
    if lastErr == nil {
      return nil
    }
    if !isRetryableErr(lastErr) {
      return lastErr
    }
    hc.log.Warn("Harmonic request failed, retrying", "attempt", attempt+1, "error", lastErr)
  }
  return fmt.Errorf("harmonic request failed after %d attempts: %w", hc.maxRetries+1, lastErr)
}

func (hc *harmonicClient) doOnce(ctx context.Context, payload []byte, out interface{}) error {
  req, err := http.NewRequestWithContext(ctx, http.MethodPost, hc.baseURL+"/graphql", bytes.NewReader(payload))
  if err != nil {
    return err
  }
  req.Header.Set("Content-Type", "application/json")
  req.Header.Set("apikey", hc.apiKey)

  resp, err := hc.httpClient.Do(req)
  if err != nil {
    return err
  }
  defer resp.Body.Close()

  body, err := io.ReadAll(resp.Body)
  if err != nil {
    return err
  }
  if resp.StatusCode != http.StatusOK {
    return &harmonicHTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
  }
  if err := json.Unmarshal(body, out); err != nil {
    return fmt.Errorf("decode harmonic response: %w", err)
  }
  return nil
}

const personsByIDsQuery = `
    query Query($getPersonByIdsIds: [Int!]!) {
        getPersonsByIds(ids: $getPersonByIdsIds) {
            fullName
            profilePictureUrl
            entityUrn
            socials {
                linkedin {
                    url
                }
            }
        }
    }
`

func (hc *harmonicClient) GetPersonsByIDs(ctx context.Context, ids []int64) ([]*HarmonicPerson, error) {
  if len(ids) == 0 {
    return []*HarmonicPerson{}, nil
  }

  var envelope struct {
    Data struct {
      GetPersonsByIds []*HarmonicPerson `json:"getPersonsByIds"`
    } `json:"data"`
  }
  variables := map[string]interface{}{"getPersonByIdsIds": ids}
  if err := hc.do(ctx, personsByIDsQuery, variables, &envelope); err != nil {
    return nil, err
  }
  return envelope.Data.GetPersonsByIds, nil
}

const teamConnectionsQuery = `
    query Query($getCompanyByIdId: Int!) {
        getCompanyById(id: $getCompanyByIdId) {
            userConnections {
                user {
                    email
                    name
                }
            }
        }
    }
`

func (hc *harmonicClient) GetTeamConnections(ctx context.Context, companyID int64) ([]*TeamConnection, error) {
  var envelope struct {
    Data struct {
      GetCompanyById struct {
        UserConnections []struct {
          User struct {
            Email string `json:"email"`
            Name  string `json:"name"`
          } `json:"user"`
        } `json:"userConnections"`
      } `json:"getCompanyById"`
    } `json:"data"`
  }
  variables := map[string]interface{}{"getCompanyByIdId": companyID}
  if err := hc.do(ctx, teamConnectionsQuery, variables, &envelope); err != nil {
    return nil, err
  }

  connections := make([]*TeamConnection, 0, len(envelope.Data.GetCompanyById.UserConnections))
  for _, connection := range envelope.Data.GetCompanyById.UserConnections {
    connections = append(connections, &TeamConnection{
      Email: connection.User.Email,
      Name:  connection.User.Name,
    })
  }
  return connections, nil
}
