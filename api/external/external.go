/* external.go
 * Contains the logic used to fetch data from external MediaWiki and LiquipediaDB apis, and
 * return the results to the higher level functions. All requests share one rate limiter to
 * stay inside the api's request budget
 */

package external

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bracket-bot/api/matchgroup"
	"bracket-bot/api/shared"

	"golang.org/x/time/rate"
)

const (
	matchAPIURL        = "https://api.liquipedia.net/api/v3/match"
	teamTemplateAPIURL = "https://api.liquipedia.net/api/v3/teamtemplate"
	wikitextURLFormat  = "https://liquipedia.net/%s/%s?action=raw%s"
)

// One request per two seconds, as required for authenticated LiquipediaDB access
var limiter = rate.NewLimiter(rate.Every(2*time.Second), 1)

// Client fetches raw data from the LiquipediaDB and MediaWiki apis for one wiki
type Client struct {
	APIKey string
	Wiki   string
	HTTP   *http.Client
}

// NewClient creates a Client for the given wiki (e.g. "counterstrike")
func NewClient(apiKey string, wiki string) *Client {
	return &Client{
		APIKey: apiKey,
		Wiki:   wiki,
		HTTP:   &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchMatchRecords fetches the raw match2 records for the given bracket group ids. The
// records are returned loosely typed, exactly as stored; normalization happens in the
// matchgroup package
func (c *Client) FetchMatchRecords(groupIDs []string) ([]matchgroup.Record, error) {
	if len(groupIDs) == 0 {
		return nil, fmt.Errorf("at least one group id is required")
	}

	var conditions []string
	for _, id := range groupIDs {
		conditions = append(conditions, fmt.Sprintf("[[match2bracketid::%s]]", id))
	}

	parsedURL, err := url.Parse(matchAPIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	params := parsedURL.Query()
	params.Set("limit", "100")
	params.Set("wiki", c.Wiki)
	params.Set("conditions", strings.Join(conditions, " OR "))
	params.Set("rawstreams", "false")
	params.Set("streamurls", "false")
	parsedURL.RawQuery = params.Encode()

	body, err := c.authorizedGet(parsedURL.String())
	if err != nil {
		return nil, err
	}
	return RecordsFromJSON(string(body))
}

// FetchTeamTemplate fetches one team template display record by its exact template name
func (c *Client) FetchTeamTemplate(name string) (*shared.TeamTemplate, error) {
	parsedURL, err := url.Parse(teamTemplateAPIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	params := parsedURL.Query()
	params.Set("wiki", c.Wiki)
	params.Set("conditions", fmt.Sprintf("[[name::%s]]", name))
	params.Set("limit", "1")
	parsedURL.RawQuery = params.Encode()

	body, err := c.authorizedGet(parsedURL.String())
	if err != nil {
		return nil, err
	}
	return TeamTemplateFromJSON(string(body))
}

// GetWikitext fetches the raw wikitext of a tournament page. No parsing is performed here
func (c *Client) GetWikitext(page string, optionalParams string) (string, error) {
	pageURL := fmt.Sprintf(wikitextURLFormat, c.Wiki, page, optionalParams)

	if err := limiter.Wait(context.Background()); err != nil {
		return "", err
	}

	request, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("User-Agent", "BracketBotDataFetcher/1.0")
	request.Header.Set("Accept-Encoding", "gzip")

	response, err := c.HTTP.Do(request)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch page %s: status code %d", page, response.StatusCode)
	}

	var body []byte
	if response.Header.Get("Content-Encoding") == "gzip" {
		reader, err := gzip.NewReader(response.Body)
		if err != nil {
			return "", fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer reader.Close()
		body, err = io.ReadAll(reader)
		if err != nil {
			return "", err
		}
	} else {
		body, err = io.ReadAll(response.Body)
		if err != nil {
			return "", err
		}
	}

	return string(body), nil
}

// authorizedGet performs a rate-limited GET with the LiquipediaDB api key header applied
func (c *Client) authorizedGet(requestURL string) ([]byte, error) {
	if err := limiter.Wait(context.Background()); err != nil {
		return nil, err
	}

	request, err := http.NewRequest("GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("Authorization", fmt.Sprintf("Apikey %s", c.APIKey))

	response, err := c.HTTP.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api request failed: status code %d", response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// RecordsFromJSON parses a LiquipediaDB api response into the raw record list
func RecordsFromJSON(payload string) ([]matchgroup.Record, error) {
	var root map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &root); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}

	rawResults, ok := root["result"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'result' field")
	}

	records := make([]matchgroup.Record, 0, len(rawResults))
	for i, rawResult := range rawResults {
		record, ok := rawResult.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("result entry %d is not an object", i)
		}
		records = append(records, matchgroup.Record(record))
	}
	return records, nil
}

// TeamTemplateFromJSON parses a teamtemplate api response. An empty result list is a miss
// and returns nil without an error; the caller decides how to surface it
func TeamTemplateFromJSON(payload string) (*shared.TeamTemplate, error) {
	var root struct {
		Result []struct {
			Name        string `json:"name"`
			BracketName string `json:"bracketname"`
			DisplayName string `json:"displayname"`
			PageName    string `json:"page"`
			ShortName   string `json:"shortname"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(payload), &root); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}
	if len(root.Result) == 0 {
		return nil, nil
	}
	first := root.Result[0]
	return &shared.TeamTemplate{
		BracketName: first.BracketName,
		DisplayName: first.DisplayName,
		PageName:    first.PageName,
		ShortName:   first.ShortName,
	}, nil
}
