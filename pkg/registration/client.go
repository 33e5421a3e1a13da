package registration

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

const (
	searchResultsPath = "/StudentRegistrationSsb/ssb/searchResults/searchResults"
	suggestionsPath   = "/StudentRegistrationSsb/ssb/classSearch/get_subjectcoursecombo"

	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/139.0.0.0 Safari/537.36"
)

type ClientConfig struct {
	BaseURL      string
	UserAgent    string
	PageMaxSize  int
	RequestDelay time.Duration // Minimum pause between two consecutive requests; also the initial retry backoff
	Retries      int           // Extra attempts on transport errors and 5xx responses
	Logger       *log.Logger   // Optional request tracing
}

// Client talks to a Banner-style registration system. It implements Fetcher and Resetter.
type Client struct {
	config  ClientConfig
	session *Session
	limiter *rate.Limiter
}

func NewClient(config ClientConfig) *Client {
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.Retries < 0 {
		config.Retries = 0
	}
	if config.PageMaxSize <= 0 {
		config.PageMaxSize = 50
	}
	limit := rate.Inf
	if config.RequestDelay > 0 {
		limit = rate.Every(config.RequestDelay)
	}
	return &Client{
		config:  config,
		session: NewSession(config.BaseURL, config.UserAgent),
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (client *Client) Session() *Session {
	return client.session
}

func (client *Client) Reset() {
	client.session.Reset()
}

func (client *Client) FetchSections(ctx context.Context, courseCode, term string) ([]RawSection, error) {
	body, err := client.search(ctx, term, "searchCourse", url.Values{
		"txt_subjectcoursecombo": {strings.ToUpper(courseCode)},
		"pageMaxSize":            {strconv.Itoa(client.config.PageMaxSize)},
	})
	if err != nil {
		return nil, err
	}
	return ParseSearchResponse(body)
}

// SearchSubject lists every section of a subject (e.g. "CS") offered in the term.
func (client *Client) SearchSubject(ctx context.Context, subject, term string) ([]RawSection, error) {
	body, err := client.search(ctx, term, "searchSubject", url.Values{
		"txt_subject": {strings.ToUpper(subject)},
		"pageMaxSize": {strconv.Itoa(2 * client.config.PageMaxSize)},
	})
	if err != nil {
		return nil, err
	}
	return ParseSearchResponse(body)
}

// Suggest queries the subject/course autocomplete endpoint. Unexpected payloads yield no suggestions.
func (client *Client) Suggest(ctx context.Context, searchTerm, term string) ([]Suggestion, error) {
	if err := client.ensureSession(ctx, term); err != nil {
		return nil, err
	}
	query := url.Values{
		"searchTerm":      {strings.ToLower(searchTerm)},
		"term":            {term},
		"offset":          {"1"},
		"max":             {"50"},
		"uniqueSessionId": {client.session.UniqueSessionID},
		"_":               {strconv.FormatInt(time.Now().UnixMilli(), 10)},
	}
	body, err := client.getWithRetry(ctx, "suggest", suggestionsPath+"?"+query.Encode())
	if err != nil {
		return nil, err
	}
	return ParseSuggestions(body), nil
}

func (client *Client) search(ctx context.Context, term, operation string, criteria url.Values) ([]byte, error) {
	if err := client.ensureSession(ctx, term); err != nil {
		return nil, err
	}

	query := url.Values{
		"txt_term":        {term},
		"startDatepicker": {""},
		"endDatepicker":   {""},
		"uniqueSessionId": {client.session.UniqueSessionID},
		"pageOffset":      {"0"},
		"sortColumn":      {"subjectDescription"},
		"sortDirection":   {"asc"},
	}
	for key, values := range criteria {
		query[key] = values
	}
	return client.getWithRetry(ctx, operation, searchResultsPath+"?"+query.Encode())
}

func (client *Client) ensureSession(ctx context.Context, term string) error {
	if client.session.Initialized(term) {
		return nil
	}
	client.session.Reset()
	if err := client.limiter.Wait(ctx); err != nil {
		return err
	}
	client.tracef("initializing session for term %v", term)
	if err := client.session.Initialize(ctx, term); err != nil {
		return fmt.Errorf("cannot initialize registration session: %w", err)
	}
	return nil
}

// getWithRetry retries transport errors and 5xx responses with exponential
// backoff; any other status is returned at once.
func (client *Client) getWithRetry(ctx context.Context, operation, path string) ([]byte, error) {
	attempt := func() ([]byte, error) {
		if err := client.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(ctx.Err())
			}
			return nil, backoff.Permanent(fmt.Errorf("%v: %w", operation, err))
		}

		request, err := client.session.newRequest(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		request.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
		request.Header.Set("X-Requested-With", "XMLHttpRequest")
		request.Header.Set("Referer", client.session.BaseURL+classSearchPath)
		request.Header.Set("Cache-Control", "no-cache, no-store")
		if client.session.SynchronizerToken != "" {
			request.Header.Set("X-Synchronizer-Token", client.session.SynchronizerToken)
		}

		body, err := client.session.do(request)
		if err == nil {
			return body, nil
		}

		var statusErr StatusError
		if errors.As(err, &statusErr) {
			statusErr.Operation = operation
			if statusErr.StatusCode < http.StatusInternalServerError {
				return nil, backoff.Permanent(statusErr)
			}
			return nil, statusErr
		}
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, err
	}

	notify := func(err error, wait time.Duration) {
		client.tracef("%v: retrying in %v after: %v", operation, wait, err)
	}
	return backoff.RetryNotifyWithData(attempt, client.retryPolicy(ctx), notify)
}

func (client *Client) retryPolicy(ctx context.Context) backoff.BackOff {
	var policy backoff.BackOff = &backoff.ZeroBackOff{}
	if client.config.RequestDelay > 0 {
		exponential := backoff.NewExponentialBackOff()
		exponential.InitialInterval = client.config.RequestDelay
		exponential.MaxElapsedTime = 0
		policy = exponential
	}
	return backoff.WithContext(backoff.WithMaxRetries(policy, uint64(client.config.Retries)), ctx)
}

func (client *Client) tracef(format string, args ...any) {
	if client.config.Logger != nil {
		client.config.Logger.Printf(format, args...)
	}
}
