package core

import (
	"strings"

	"svmm/internal/domain"
	"svmm/internal/logging"

	"go.uber.org/zap"
)

// ParseUpdateKeys turns manifest update keys such as "Nexus:1915" or
// "GitHub:owner/repo@beta" into web links for game. Keys for sites without a
// link form are logged at debug level and skipped. A later key for the same
// site replaces an earlier one.
func ParseUpdateKeys(game domain.Game, keys []string, log *zap.SugaredLogger) domain.ModLinks {
	log = logging.OrNop(log)

	var links domain.ModLinks
	for _, key := range keys {
		site, value, ok := strings.Cut(key, ":")
		if !ok {
			log.Debugw("malformed update key", "key", key)
			continue
		}
		if at := strings.IndexByte(value, '@'); at >= 0 {
			value = value[:at]
		}
		value = strings.TrimSpace(value)
		if value == "" {
			log.Debugw("update key has no value", "key", key)
			continue
		}

		switch strings.ToLower(strings.TrimSpace(site)) {
		case "nexus":
			links.Nexus = "https://nexusmods.com/" + game.NexusDomain + "/mods/" + value
		case "github":
			links.GitHub = "https://github.com/" + value
		case "moddrop":
			links.ModDrop = "https://www.moddrop.com/" + game.ModDropSlug + "/mods/" + value
		default:
			log.Debugw("no link form for update key", "site", site, "key", key)
		}
	}
	return links
}
