package resolve

import (
	"regexp"

	"namecheck/domain/verdict"
)

// Platform is the typed per-platform configuration consumed uniformly by the
// social resolver. Reliability tiers are deliberately per platform: a
// platform with clean 404 semantics earns high confidence, one that answers
// 200 for everything is capped at medium no matter what it returns.
type Platform struct {
	Name string

	// ProfileURLs are URL templates (%s = handle). Platforms with more than
	// one form (e.g. a profile page and a publication subdomain) are
	// Available only when every form is unclaimed.
	ProfileURLs []string

	// ReliabilityTier caps the confidence of any probe-derived verdict.
	ReliabilityTier verdict.Confidence

	// BotBlocked platforms answer automated probes with challenges and
	// bogus statuses; anything but a clean 404/200 from them is Unknown.
	BotBlocked bool

	// UsernameRule rejects handles the platform would never accept.
	UsernameRule *regexp.Regexp

	// SearchHost scopes the optional search-engine cross-check.
	SearchHost string
}

var (
	alnumUnderscore = regexp.MustCompile(`^[a-z0-9_]{1,30}$`)
	alnumDash       = regexp.MustCompile(`^[a-z0-9-]{1,39}$`)
	alnumDot        = regexp.MustCompile(`^[a-z0-9._]{1,30}$`)
)

// DefaultPlatforms is the built-in platform table.
var DefaultPlatforms = map[string]Platform{
	"github": {
		Name:            "github",
		ProfileURLs:     []string{"https://github.com/%s"},
		ReliabilityTier: verdict.ConfidenceHigh,
		UsernameRule:    alnumDash,
		SearchHost:      "github.com",
	},
	"instagram": {
		Name:            "instagram",
		ProfileURLs:     []string{"https://www.instagram.com/%s/"},
		ReliabilityTier: verdict.ConfidenceMedium,
		BotBlocked:      true,
		UsernameRule:    alnumDot,
		SearchHost:      "instagram.com",
	},
	"x": {
		Name:            "x",
		ProfileURLs:     []string{"https://x.com/%s"},
		ReliabilityTier: verdict.ConfidenceMedium,
		BotBlocked:      true,
		UsernameRule:    alnumUnderscore,
		SearchHost:      "x.com",
	},
	"youtube": {
		Name:            "youtube",
		ProfileURLs:     []string{"https://www.youtube.com/@%s"},
		ReliabilityTier: verdict.ConfidenceHigh,
		UsernameRule:    alnumDot,
		SearchHost:      "youtube.com",
	},
	"tiktok": {
		Name:            "tiktok",
		ProfileURLs:     []string{"https://www.tiktok.com/@%s"},
		ReliabilityTier: verdict.ConfidenceMedium,
		BotBlocked:      true,
		UsernameRule:    alnumDot,
		SearchHost:      "tiktok.com",
	},
	"medium": {
		// Medium has both a profile path and a publication subdomain form;
		// the handle is only free when neither is claimed.
		Name: "medium",
		ProfileURLs: []string{
			"https://medium.com/@%s",
			"https://%s.medium.com",
		},
		ReliabilityTier: verdict.ConfidenceHigh,
		UsernameRule:    alnumDash,
		SearchHost:      "medium.com",
	},
	"reddit": {
		Name:            "reddit",
		ProfileURLs:     []string{"https://www.reddit.com/user/%s"},
		ReliabilityTier: verdict.ConfidenceMedium,
		UsernameRule:    alnumUnderscore,
		SearchHost:      "reddit.com",
	},
}
