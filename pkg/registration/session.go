package registration

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

const (
	landingPath       = "/StudentRegistrationSsb"
	termSelectionPath = "/StudentRegistrationSsb/ssb/term/termSelection?mode=search"
	termSearchPath    = "/StudentRegistrationSsb/ssb/term/search"
	classSearchPath   = "/StudentRegistrationSsb/ssb/classSearch/classSearch"
)

var (
	tokenPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)synchronizerToken["']?\s*[:=]\s*["']([^"']+)["']`),
		regexp.MustCompile(`(?i)token["']?\s*[:=]\s*["']([a-f0-9-]{36})["']`),
		regexp.MustCompile(`(?i)csrfToken["']?\s*[:=]\s*["']([^"']+)["']`),
	}
	tokenMetaNames = []string{"_token", "csrf-token", "synchronizer-token"}
)

// Session is the registration system's conversational state: cookies, the
// unique session id sent with every search and the synchronizer token.
// A Session is bound to one term; Reset clears everything.
type Session struct {
	BaseURL           string
	UserAgent         string
	HTTP              *http.Client
	UniqueSessionID   string
	SynchronizerToken string
	Term              string
}

func NewSession(baseURL, userAgent string) *Session {
	session := &Session{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: userAgent,
	}
	session.Reset()
	return session
}

// Reset drops cookies, tokens and the selected term.
func (session *Session) Reset() {
	jar, _ := cookiejar.New(nil) // cookiejar.New never fails without options
	session.HTTP = &http.Client{Jar: jar, Timeout: 30 * time.Second}
	session.UniqueSessionID = ""
	session.SynchronizerToken = ""
	session.Term = ""
}

// Initialized reports whether the session is ready to search the given term.
func (session *Session) Initialized(term string) bool {
	return session.UniqueSessionID != "" && session.Term == term
}

// Initialize walks the term-selection flow and discovers the synchronizer token.
func (session *Session) Initialize(ctx context.Context, term string) error {
	if _, err := session.get(ctx, landingPath, nil); err != nil {
		return fmt.Errorf("cannot open registration landing page: %w", err)
	}
	if _, err := session.get(ctx, termSelectionPath, nil); err != nil {
		return fmt.Errorf("cannot open term selection: %w", err)
	}

	uniqueSessionID := newUniqueSessionID()
	form := url.Values{
		"term":            {term},
		"studyPath":       {""},
		"studyPathText":   {""},
		"startDatepicker": {""},
		"endDatepicker":   {""},
		"uniqueSessionId": {uniqueSessionID},
	}
	request, err := session.newRequest(ctx, http.MethodPost, termSearchPath, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	request.Header.Set("X-Requested-With", "XMLHttpRequest")
	request.Header.Set("Referer", session.BaseURL+termSelectionPath)
	if _, err := session.do(request); err != nil {
		return fmt.Errorf("cannot select term %v: %w", term, err)
	}

	page, err := session.get(ctx, classSearchPath, nil)
	if err != nil {
		return fmt.Errorf("cannot open class search: %w", err)
	}

	token, err := DiscoverToken(bytes.NewReader(page))
	if err != nil {
		return fmt.Errorf("cannot parse class search page: %w", err)
	}

	session.SynchronizerToken = token
	session.UniqueSessionID = uniqueSessionID
	session.Term = term
	return nil
}

// DiscoverToken looks for the synchronizer token in inline scripts, then meta tags, then hidden inputs.
// A page without a token yields an empty string; searches proceed without the header.
func DiscoverToken(page io.Reader) (string, error) {
	document, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return "", err
	}

	token := ""
	document.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		text := script.Text()
		for _, pattern := range tokenPatterns {
			if match := pattern.FindStringSubmatch(text); match != nil {
				token = match[1]
				return false
			}
		}
		return true
	})
	if token != "" {
		return token, nil
	}

	document.Find("meta").EachWithBreak(func(_ int, meta *goquery.Selection) bool {
		name, _ := meta.Attr("name")
		for _, candidate := range tokenMetaNames {
			if name == candidate {
				token, _ = meta.Attr("content")
				return false
			}
		}
		return true
	})
	if token != "" {
		return token, nil
	}

	document.Find(`input[type="hidden"]`).EachWithBreak(func(_ int, input *goquery.Selection) bool {
		name, _ := input.Attr("name")
		if strings.Contains(strings.ToLower(name), "token") {
			token, _ = input.Attr("value")
			return false
		}
		return true
	})
	return token, nil
}

func (session *Session) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	request, err := session.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return session.do(request)
}

func (session *Session) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	request, err := http.NewRequestWithContext(ctx, method, session.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	request.Header.Set("User-Agent", session.UserAgent)
	request.Header.Set("Accept-Language", "en-US,en;q=0.9")
	return request, nil
}

func (session *Session) do(request *http.Request) ([]byte, error) {
	response, err := session.HTTP.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	if response.StatusCode != http.StatusOK {
		return body, StatusError{Operation: request.Method + " " + request.URL.Path, StatusCode: response.StatusCode}
	}
	return body, nil
}

func newUniqueSessionID() string {
	prefix := strings.ReplaceAll(uuid.NewString(), "-", "")[:5]
	return fmt.Sprintf("%v%d", prefix, time.Now().UnixMilli())
}
