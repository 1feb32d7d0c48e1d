package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnsupportedLanguage is returned for language tags the execution
// service is not asked to run.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Languages the editor offers. Anything else is rejected before the
// external call.
var supported = map[string]bool{
	"javascript": true,
	"python":     true,
	"cpp":        true,
	"java":       true,
}

func Supported(language string) bool {
	return supported[language]
}

type executeRequest struct {
	Language string `json:"language"`
	Source   string `json:"source"`
}

type executeResponse struct {
	Output string `json:"output"`
	Stderr string `json:"stderr"`
}

// Runner submits code to an external execution API and returns the
// captured output. Execution semantics live entirely on the other side;
// this is a plain request/response call, decoupled from the relay.
type Runner struct {
	client  *http.Client
	baseURL string
}

func New(baseURL string, timeout time.Duration) *Runner {
	return &Runner{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (r *Runner) Run(ctx context.Context, language, source string) (string, error) {
	if !Supported(language) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}

	body, err := json.Marshal(executeRequest{Language: language, Source: source})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("execution request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("execution service returned %d: %s", resp.StatusCode, raw)
	}

	var result executeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("execution response: %w", err)
	}

	if result.Stderr != "" {
		return result.Output + result.Stderr, nil
	}
	return result.Output, nil
}
