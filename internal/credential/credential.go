// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package credential hides secrets from the values quoted in failure messages.
package credential

import (
	"regexp"

	"github.com/ktong/konfig/tree"
)

// Blur renders the value at the given path for messages.
//
// Values under secret-like paths, e.g. db.password, are masked,
// and values which look like well-known secrets are replaced with the kind of the secret.
func Blur(path string, value tree.Value) string {
	if name, ok := secretName(path, value); ok {
		return name
	}

	return value.String()
}

// IsSecret reports whether Blur hides the value at the given path.
// Errors quoting such values must not be reported either.
func IsSecret(path string, value tree.Value) bool {
	_, ok := secretName(path, value)

	return ok
}

func secretName(path string, value tree.Value) (string, bool) {
	if pathPattern.MatchString(path) {
		return mask, true
	}

	text, ok := value.Text()
	if !ok {
		text = value.String()
	}
	for _, secret := range secrets {
		if secret.pattern.MatchString(text) {
			return secret.name, true
		}
	}

	return "", false
}

const mask = "******"

//nolint:gochecknoglobals,lll
var (
	pathPattern = regexp.MustCompile(`(?i)password|passwd|pass|pwd|secret|token|apikey|api_key|bearer|credential|private_key`)
	// The first matching secret names the value.
	secrets = []struct {
		name    string
		pattern *regexp.Regexp
	}{
		{"private key", regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY( BLOCK)?-----`)},
		{"AWS access key", regexp.MustCompile(`\b(AKIA|ASIA)[0-9A-Z]{16}\b`)},
		{"GitHub token", regexp.MustCompile(`\b(ghp|gho|ghs|ghu|ghr)_[a-zA-Z0-9]{36}\b|\bgithub_pat_[a-zA-Z0-9]{22}_[a-zA-Z0-9]{59}\b`)},
		{"Google API key", regexp.MustCompile(`\bAIza[0-9A-Za-z\-_]{35}\b`)},
		{"Google OAuth client", regexp.MustCompile(`[0-9]+-[0-9A-Za-z_]{32}\.apps\.googleusercontent\.com`)},
		{"Google OAuth access token", regexp.MustCompile(`\bya29\.[0-9A-Za-z\-_]+`)},
		{"Google service account", regexp.MustCompile(`"type":\s*"service_account"`)},
		{"Slack token", regexp.MustCompile(`\bxox[pborsa]-[0-9A-Za-z-]{10,}`)},
		{"Slack webhook", regexp.MustCompile(`https://hooks\.slack\.com/services/T[a-zA-Z0-9_]{8,}/B[a-zA-Z0-9_]{8,}/[a-zA-Z0-9_]{24}`)},
		{"Stripe key", regexp.MustCompile(`\b[sr]k_live_[0-9a-zA-Z]{24,}`)},
		{"Twilio key", regexp.MustCompile(`\bSK[0-9a-fA-F]{32}\b`)},
		{"password in URL", regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.-]{1,9}://[^/\s:@]{1,64}:[^/\s:@]{1,64}@`)},
	}
)
