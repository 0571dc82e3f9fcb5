package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(fn roundTripFunc) *Client {
	return New(Config{
		BaseURL:    "https://provider.example.com/v1/",
		APIKey:     "sk-test",
		HTTPClient: &http.Client{Transport: fn},
	})
}

func TestNewDefaults(t *testing.T) {
	c := New(Config{})
	if c.cfg.HTTPClient == nil {
		t.Fatal("expected non-nil HTTP client")
	}
	if c.cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("base url = %q", c.cfg.BaseURL)
	}
}

func TestChatCompletion(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.String() != "https://provider.example.com/v1/chat/completions" {
			t.Fatalf("url = %s", req.URL)
		}
		if got := req.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Fatalf("authorization = %q", got)
		}

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string          `json:"role"`
				Content json.RawMessage `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body.Model != "gpt-4o-mini" || len(body.Messages) != 1 {
			t.Fatalf("unexpected request: %+v", body)
		}
		if !strings.Contains(string(body.Messages[0].Content), `"image_url":{"url":"data:image/png;base64,AAAA"}`) {
			t.Fatalf("content = %s", body.Messages[0].Content)
		}
		return response(http.StatusOK, `{"choices":[{"message":{"content":"hello"}}]}`), nil
	})

	got, err := client.ChatCompletion(context.Background(), "gpt-4o-mini", []Message{{
		Role:    "user",
		Content: []ContentPart{TextPart("read this"), ImagePart("data:image/png;base64,AAAA")},
	}})
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}
	if got != "hello" {
		t.Fatalf("content = %q, want hello", got)
	}
}

func TestChatCompletionErrors(t *testing.T) {
	tests := []struct {
		name     string
		res      *http.Response
		resErr   error
		wantCode int
	}{
		{name: "status error", res: response(http.StatusTooManyRequests, " slow down "), wantCode: http.StatusTooManyRequests},
		{name: "transport error", resErr: errors.New("dial failed")},
		{name: "no choices", res: response(http.StatusOK, `{"choices":[]}`)},
		{name: "bad json", res: response(http.StatusOK, `{`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(func(*http.Request) (*http.Response, error) {
				return tt.res, tt.resErr
			})
			_, err := client.ChatCompletion(context.Background(), "m", []Message{{Role: "user", Content: "hi"}})
			if err == nil {
				t.Fatal("expected error")
			}
			var apiErr *APIError
			if tt.wantCode != 0 {
				if !errors.As(err, &apiErr) || apiErr.StatusCode != tt.wantCode {
					t.Fatalf("err = %v, want APIError %d", err, tt.wantCode)
				}
				if apiErr.Body != "slow down" {
					t.Fatalf("body = %q", apiErr.Body)
				}
			}
			if strings.Contains(err.Error(), "sk-test") {
				t.Fatalf("error leaks api key: %v", err)
			}
		})
	}
}

func TestChatCompletionValidation(t *testing.T) {
	client := &Client{cfg: Config{
		BaseURL: "https://provider.example.com/v1",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			t.Fatalf("round trip should not execute for validation failure: %v", req.URL)
			return nil, nil
		})},
	}}
	if _, err := client.ChatCompletion(context.Background(), "m", []Message{{Role: "user", Content: "hi"}}); err == nil {
		t.Fatal("expected missing api key error")
	}

	client.cfg.APIKey = "sk-test"
	if _, err := client.ChatCompletion(context.Background(), "", []Message{{Role: "user", Content: "hi"}}); err == nil {
		t.Fatal("expected missing model error")
	}
	if _, err := client.ChatCompletion(context.Background(), "m", nil); err == nil {
		t.Fatal("expected missing messages error")
	}
}

func TestTranscribe(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if !strings.HasSuffix(req.URL.Path, "/audio/transcriptions") {
			t.Fatalf("path = %s", req.URL.Path)
		}
		if err := req.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := req.FormValue("model"); got != "whisper-1" {
			t.Fatalf("model = %q", got)
		}
		if got := req.FormValue("response_format"); got != "text" {
			t.Fatalf("response_format = %q", got)
		}
		if got := req.FormValue("language"); got != "en" {
			t.Fatalf("language = %q", got)
		}
		file, header, err := req.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if string(data) != "RIFF" || header.Filename != "clip.wav" {
			t.Fatalf("file = %q (%s)", data, header.Filename)
		}
		return response(http.StatusOK, "Alice and Bob had pizza\n"), nil
	})

	got, err := client.Transcribe(context.Background(), TranscriptionRequest{
		Model:    "whisper-1",
		Audio:    []byte("RIFF"),
		Filename: "clip.wav",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got != "Alice and Bob had pizza" {
		t.Fatalf("text = %q", got)
	}
}

func TestTranscribeRequiresAudio(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		t.Fatalf("round trip should not execute: %v", req.URL)
		return nil, nil
	})
	if _, err := client.Transcribe(context.Background(), TranscriptionRequest{Model: "whisper-1"}); err == nil {
		t.Fatal("expected missing audio error")
	}
}

func TestTimeout(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})
	client.cfg.Timeout = 10 * time.Millisecond

	_, err := client.ChatCompletion(context.Background(), "m", []Message{{Role: "user", Content: "hi"}})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}
