package apclient

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"net/http"
	"strings"
	"testing"

	"github.com/yonnyZer0/apify/pkg/apclient/aperr"
)

func TestSetRecord_SmallBody(t *testing.T) {
	cs := newCaptureServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	client := newTestClient(cs, "test-token")

	err := client.KeyValueStore("store1").SetRecord(context.Background(), RecordParams{
		Key:  "foo",
		Body: []byte("bar"),
	})
	if err != nil {
		t.Fatalf("SetRecord failed: %v", err)
	}

	reqs := cs.Requests()
	if len(reqs) != 1 {
		t.Fatalf("Expected exactly 1 request, got %d", len(reqs))
	}
	req := reqs[0]
	if req.Method != http.MethodPut {
		t.Errorf("Expected PUT, got %s", req.Method)
	}
	if req.Path != "/v2/key-value-stores/store1/records/foo" {
		t.Errorf("Unexpected path: %s", req.Path)
	}
	if got := req.Header.Get("Content-Encoding"); got != "gzip" {
		t.Errorf("Expected Content-Encoding gzip, got %q", got)
	}
	if got := req.Header.Get("Content-Type"); got != "text/plain; charset=utf-8" {
		t.Errorf("Expected default content type, got %q", got)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer test-token" {
		t.Errorf("Expected bearer auth on API PUT, got %q", got)
	}

	decompressed, err := gunzipBytes(req.Body)
	if err != nil {
		t.Fatalf("Body is not valid gzip: %v", err)
	}
	if string(decompressed) != "bar" {
		t.Errorf("Expected body to decompress to %q, got %q", "bar", decompressed)
	}
}

func TestSetRecord_CustomContentType(t *testing.T) {
	cs := newCaptureServer(t, func(w http.ResponseWriter, r *http.Request) {})
	client := newTestClient(cs, "")

	err := client.KeyValueStore("store1").SetRecord(context.Background(), RecordParams{
		Key:         "data.json",
		Body:        []byte(`{"ok":true}`),
		ContentType: "application/json; charset=utf-8",
	})
	if err != nil {
		t.Fatalf("SetRecord failed: %v", err)
	}

	req := cs.Requests()[0]
	if got := req.Header.Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Errorf("Expected custom content type, got %q", got)
	}
}

// incompressibleBytes returns n pseudo-random bytes that gzip cannot
// meaningfully shrink, so the compressed size stays close to n.
func incompressibleBytes(t *testing.T, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	rng := rand.New(rand.NewSource(42))
	if _, err := rng.Read(buf); err != nil {
		t.Fatalf("generating random bytes: %v", err)
	}
	return buf
}

func TestSetRecord_LargeBodyDirectUpload(t *testing.T) {
	body := incompressibleBytes(t, 300000)

	var signedURL string
	cs := newCaptureServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/direct-upload-url") {
			writeData(w, `{"signedUrl":"`+signedURL+`"}`)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	signedURL = cs.URL + "/signed/big"
	client := newTestClient(cs, "test-token")

	err := client.KeyValueStore("store1").SetRecord(context.Background(), RecordParams{
		Key:  "big",
		Body: body,
	})
	if err != nil {
		t.Fatalf("SetRecord failed: %v", err)
	}

	reqs := cs.Requests()
	if len(reqs) != 2 {
		t.Fatalf("Expected exactly 2 requests (GET + PUT), got %d", len(reqs))
	}

	get := reqs[0]
	if get.Method != http.MethodGet {
		t.Errorf("Expected first request to be GET, got %s", get.Method)
	}
	if get.Path != "/v2/key-value-stores/store1/records/big/direct-upload-url" {
		t.Errorf("Unexpected direct-upload-url path: %s", get.Path)
	}
	if got := get.Header.Get("Content-Type"); got != "text/plain; charset=utf-8" {
		t.Errorf("Expected content type on signed-url request, got %q", got)
	}

	put := reqs[1]
	if put.Method != http.MethodPut {
		t.Errorf("Expected second request to be PUT, got %s", put.Method)
	}
	if put.Path != "/signed/big" {
		t.Errorf("Expected PUT to the signed URL, got %s", put.Path)
	}
	if got := put.Header.Get("Content-Encoding"); got != "gzip" {
		t.Errorf("Expected Content-Encoding gzip on signed PUT, got %q", got)
	}
	if got := put.Header.Get("Authorization"); got != "" {
		t.Errorf("Signed-URL PUT must not carry the API token, got %q", got)
	}

	decompressed, err := gunzipBytes(put.Body)
	if err != nil {
		t.Fatalf("Uploaded body is not valid gzip: %v", err)
	}
	if !bytes.Equal(decompressed, body) {
		t.Error("Uploaded body does not decompress to the original payload")
	}
}

func TestSetRecord_CompressedSizeDecidesPath(t *testing.T) {
	// 1 MiB of zeros compresses to about 1 KiB, so despite the raw size
	// being far above the threshold the record must take the single-PUT
	// path.
	body := make([]byte, 1<<20)

	cs := newCaptureServer(t, func(w http.ResponseWriter, r *http.Request) {})
	client := newTestClient(cs, "")

	err := client.KeyValueStore("store1").SetRecord(context.Background(), RecordParams{
		Key:  "zeros",
		Body: body,
	})
	if err != nil {
		t.Fatalf("SetRecord failed: %v", err)
	}

	reqs := cs.Requests()
	if len(reqs) != 1 {
		t.Fatalf("Expected the small-body path (1 request), got %d requests", len(reqs))
	}
	if reqs[0].Method != http.MethodPut {
		t.Errorf("Expected PUT, got %s", reqs[0].Method)
	}
}

func TestExceedsDirectUploadThreshold(t *testing.T) {
	tests := []struct {
		size int
		want bool
	}{
		{0, false},
		{directUploadThresholdBytes - 1, false},
		{directUploadThresholdBytes, true},
		{directUploadThresholdBytes + 1, true},
	}
	for _, tt := range tests {
		if got := exceedsDirectUploadThreshold(tt.size); got != tt.want {
			t.Errorf("exceedsDirectUploadThreshold(%d) = %v, want %v", tt.size, got, tt.want)
		}
	}
	if directUploadThresholdBytes != 262144 {
		t.Errorf("Threshold must match the platform constant 262144, got %d", directUploadThresholdBytes)
	}
}

func TestSetRecord_Validation(t *testing.T) {
	cs := newCaptureServer(t, func(w http.ResponseWriter, r *http.Request) {})
	client := newTestClient(cs, "")
	ctx := context.Background()

	tests := []struct {
		name    string
		storeID string
		params  RecordParams
	}{
		{"empty store id", "", RecordParams{Key: "foo", Body: []byte("bar")}},
		{"empty key", "store1", RecordParams{Body: []byte("bar")}},
		{"empty body", "store1", RecordParams{Key: "foo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.KeyValueStore(tt.storeID).SetRecord(ctx, tt.params)
			if !aperr.IsCode(err, aperr.CodeInvalidParameter) {
				t.Errorf("Expected invalid_parameter error, got %v", err)
			}
		})
	}

	if got := len(cs.Requests()); got != 0 {
		t.Errorf("Validation failures must not touch the network, saw %d requests", got)
	}
}

func TestSetRecord_MissingSignedURL(t *testing.T) {
	body := incompressibleBytes(t, 300000)

	cs := newCaptureServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeData(w, `{}`)
	})
	client := newTestClient(cs, "")

	err := client.KeyValueStore("store1").SetRecord(context.Background(), RecordParams{
		Key:  "big",
		Body: body,
	})
	if !aperr.IsCode(err, aperr.CodeMalformedResponse) {
		t.Fatalf("Expected malformed_response error, got %v", err)
	}

	reqs := cs.Requests()
	if len(reqs) != 1 {
		t.Fatalf("No PUT may follow a malformed signed-url response, saw %d requests", len(reqs))
	}
	if reqs[0].Method != http.MethodGet {
		t.Errorf("Expected the single request to be the GET, got %s", reqs[0].Method)
	}
}

func TestSetRecord_SignedURLRequestFails(t *testing.T) {
	body := incompressibleBytes(t, 300000)

	cs := newCaptureServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"type":"internal-error","message":"something broke"}}`))
	})
	client := newTestClient(cs, "")

	err := client.KeyValueStore("store1").SetRecord(context.Background(), RecordParams{
		Key:  "big",
		Body: body,
	})
	if err == nil {
		t.Fatal("Expected an error when the signed-url request fails")
	}

	if got := len(cs.Requests()); got != 1 {
		t.Errorf("Expected no PUT after a failed signed-url request, saw %d requests", got)
	}
}

func TestSetRecord_PutFailureSurfaces(t *testing.T) {
	cs := newCaptureServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"type":"record-not-found","message":"no such store"}}`))
	})
	client := newTestClient(cs, "")

	// Unlike the read paths, a 404 on the write path is a real failure.
	err := client.KeyValueStore("missing").SetRecord(context.Background(), RecordParams{
		Key:  "foo",
		Body: []byte("bar"),
	})
	if err == nil {
		t.Fatal("Expected a 404 on SetRecord to surface as an error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected *APIError with status 404, got %v", err)
	}
}

func TestGzipRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte("bar"),
		[]byte(""),
		incompressibleBytes(t, 4096),
		bytes.Repeat([]byte("abc"), 100000),
	}
	for _, input := range cases {
		compressed, err := gzipBytes(input)
		if err != nil {
			t.Fatalf("gzipBytes failed: %v", err)
		}
		output, err := gunzipBytes(compressed)
		if err != nil {
			t.Fatalf("gunzipBytes failed: %v", err)
		}
		if !bytes.Equal(input, output) {
			t.Errorf("Round trip mismatch for %d-byte input", len(input))
		}
	}
}
