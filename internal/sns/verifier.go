package sns

import (
	"context"
	"crypto"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"

	"github.com/ignite/ses-ingest/internal/pkg/logger"
)

// Verifier checks that an envelope was genuinely signed by SNS. It is the
// single gate guarding every record-mutating effect downstream, so every
// failure mode resolves to false — no errors escape.
type Verifier struct {
	cache CertCache
}

// NewVerifier creates a Verifier that resolves signing certificates through
// the given cache.
func NewVerifier(cache CertCache) *Verifier {
	return &Verifier{cache: cache}
}

// Verify reports whether the envelope's signature is valid for its signed
// fields. The digest algorithm follows SignatureVersion: "1" is SHA1, "2"
// is SHA256, both RSA PKCS#1 v1.5. Verification goes through
// rsa.VerifyPKCS1v15 rather than Certificate.CheckSignature because the
// x509 package refuses SHA1 signatures outright, and SNS still issues
// SignatureVersion 1 on existing topics.
func (v *Verifier) Verify(ctx context.Context, e *Envelope) bool {
	if e.Signature == "" || e.SigningCertURL == "" {
		return false
	}

	certPEM, ok := v.cache.Get(ctx, e.SigningCertURL)
	if !ok {
		return false
	}

	signed := SigningString(e)
	if len(signed) == 0 {
		logger.Warn("sns: refusing to verify unrecognized envelope type", "type", e.Type)
		return false
	}

	signature, err := base64.StdEncoding.DecodeString(e.Signature)
	if err != nil {
		return false
	}

	block, _ := pem.Decode(certPEM)
	if block == nil {
		return false
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return false
	}
	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return false
	}

	var hash crypto.Hash
	var digest []byte
	if e.SignatureVersion == "2" {
		hash = crypto.SHA256
		sum := sha256.Sum256(signed)
		digest = sum[:]
	} else {
		hash = crypto.SHA1
		sum := sha1.Sum(signed)
		digest = sum[:]
	}

	if err := rsa.VerifyPKCS1v15(pub, hash, digest, signature); err != nil {
		logger.Warn("sns: signature check failed",
			"message_id", e.MessageId, "topic", e.TopicArn, "error", err)
		return false
	}
	return true
}
