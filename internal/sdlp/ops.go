// Package sdlp is the boundary to the deep-link protocol implementation under
// test. The harness treats these operations as opaque black boxes; it times
// them but never inspects their internals.
package sdlp

import (
	"bytes"
	"compress/flate"
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// Operations is the protocol surface the benchmark drives. Implementations
// may be asynchronous internally; each call must complete before returning.
type Operations interface {
	// CreateLink signs and encodes payload into an sdlp:// link.
	CreateLink(ctx context.Context, payload []byte) (string, error)
	// VerifyLink decodes link and checks its signature, returning the
	// original payload and whether the signature held.
	VerifyLink(ctx context.Context, link string) ([]byte, bool, error)
	// Compress produces the compressed intermediate representation of
	// payload, as used inside CreateLink.
	Compress(payload []byte) ([]byte, error)
	// Version identifies the protocol library under test.
	Version() string
}

const (
	linkScheme       = "sdlp://"
	referenceVersion = "go-sdlp/0.3.1 (reference)"
)

// ReferenceOps is the built-in collaborator the CLI benchmarks when no other
// implementation is wired in: flate-compressed, ed25519-signed, base64url
// encoded links. It stands in for the real protocol library and is not a
// product surface.
type ReferenceOps struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

func NewReferenceOps() (*ReferenceOps, error) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}
	return &ReferenceOps{pub: pub, priv: priv}, nil
}

func (o *ReferenceOps) CreateLink(ctx context.Context, payload []byte) (string, error) {
	compressed, err := o.Compress(payload)
	if err != nil {
		return "", err
	}

	sig := ed25519.Sign(o.priv, compressed)

	envelope := make([]byte, 0, len(sig)+len(compressed))
	envelope = append(envelope, sig...)
	envelope = append(envelope, compressed...)

	return linkScheme + base64.RawURLEncoding.EncodeToString(envelope), nil
}

func (o *ReferenceOps) VerifyLink(ctx context.Context, link string) ([]byte, bool, error) {
	encoded, ok := strings.CutPrefix(link, linkScheme)
	if !ok {
		return nil, false, fmt.Errorf("not an sdlp link: %q", truncate(link, 32))
	}

	envelope, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false, fmt.Errorf("decode link: %w", err)
	}
	if len(envelope) < ed25519.SignatureSize {
		return nil, false, fmt.Errorf("link envelope too short: %d bytes", len(envelope))
	}

	sig := envelope[:ed25519.SignatureSize]
	compressed := envelope[ed25519.SignatureSize:]

	if !ed25519.Verify(o.pub, compressed, sig) {
		return nil, false, nil
	}

	payload, err := decompress(compressed)
	if err != nil {
		return nil, false, fmt.Errorf("decompress payload: %w", err)
	}
	return payload, true, nil
}

func (o *ReferenceOps) Compress(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("init compressor: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("flush compressor: %w", err)
	}
	return buf.Bytes(), nil
}

func (o *ReferenceOps) Version() string { return referenceVersion }

func decompress(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	return io.ReadAll(r)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
