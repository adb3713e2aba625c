package crawler

import (
	"fmt"

	"sjsage522/pokerscraper/config"
	"sjsage522/pokerscraper/internal/parser"
	"sjsage522/pokerscraper/internal/poker"
	"sjsage522/pokerscraper/internal/strategy"
)

const (
	ClubGGClubID   = "clubgg_main"
	ClubGGClubName = "ClubGG"
)

var stateAnchors = []strategy.Anchor{
	strategy.NewAnchor("preloaded state", `window\.__PRELOADED_STATE__\s*=`),
	strategy.NewAnchor("initial state", `window\.__INITIAL_STATE__\s*=`),
	strategy.NewAnchor("data", `window\.__DATA__\s*=`),
	strategy.NewAnchor("page data", `"pageData"\s*:`),
	strategy.NewAnchor("tournaments", `\btournaments?\s*[=:]`),
	strategy.NewAnchor("games", `\bgames?\s*[=:]`),
	strategy.NewAnchor("schedule", `\bschedule\s*[=:]`),
}

// ClubGGSite lists club cash tables and tournaments. The lobby markup
// changes often, so the state blobs are searched recursively.
func ClubGGSite(cfg *config.Config) Site {
	return Site{
		Provider:  poker.ProviderClubGG,
		URLs:      nonEmpty(cfg.ClubGGURL),
		WaitForJS: true,
		Selectors: []strategy.SelectorGroup{
			{
				Kind: strategy.KindAny,
				Selectors: []string{
					".game-card", ".tournament-card", ".event-card",
					"[data-game]", "[data-tournament]",
					".schedule-item", ".event-item",
				},
			},
			{
				Kind:      strategy.KindAny,
				Selectors: []string{"table tbody tr", "li"},
				Keywords:  parser.DefaultKeywords,
			},
		},
		Regex: RegexOptions{Tournaments: true, Cash: true},
		Embedded: strategy.EmbeddedConfig{
			Anchors:   stateAnchors,
			Recursive: true,
			JSONLD:    true,
		},
		Bounds:    parser.DefaultBounds(),
		Policy:    PolicyRunAll,
		ClubID:    ClubGGClubID,
		ClubName:  ClubGGClubName,
		CacheKey:  "clubgg_cooldown",
		BlockTime: cfg.BlockTime,
	}
}

// GGPokerSite reads the tournament schedule. Cards live in swiper
// carousels and section containers of a client-rendered app.
func GGPokerSite(cfg *config.Config) Site {
	return Site{
		Provider:  poker.ProviderGGPoker,
		URLs:      nonEmpty(cfg.GGPokerURL, cfg.GGPokerScheduleURL),
		WaitForJS: true,
		Selectors: []strategy.SelectorGroup{
			{
				Kind:      strategy.KindTournament,
				Selectors: []string{".swiper-slide", "[class*='swiper'] > div", "[slider] .slide"},
				Keywords:  parser.DefaultKeywords,
			},
			{
				Kind: strategy.KindTournament,
				Selectors: []string{
					"[section-container]", "[key-visual-tournaments]",
					".tournament-card", ".event-card",
					"[class*='tournament']", "[class*='event']",
				},
				Keywords: parser.DefaultKeywords,
			},
		},
		Regex: RegexOptions{Tournaments: true},
		Embedded: strategy.EmbeddedConfig{
			Anchors: []strategy.Anchor{
				strategy.NewAnchor("tournaments", `"tournaments"\s*:`),
				strategy.NewAnchor("schedule", `"schedule"\s*:`),
				strategy.NewAnchor("events", `"events"\s*:`),
				strategy.NewAnchor("initial data", `window\.__INITIAL_DATA__\s*=`),
			},
		},
		Bounds:    parser.DefaultBounds().WithOverrides(parser.Bounds{BuyInMin: 10, BuyInMax: 100000}),
		Policy:    PolicyRunAll,
		CacheKey:  "ggpoker_cooldown",
		BlockTime: cfg.BlockTime,
	}
}

var pokerStarsKeywords = append([]string{"satellite", "freeroll", "spin"}, parser.DefaultKeywords...)

// PokerStarsSite reads schedule tables and tournament cards
func PokerStarsSite(cfg *config.Config) Site {
	return Site{
		Provider:  poker.ProviderPokerStars,
		URLs:      nonEmpty(cfg.PokerStarsURL),
		WaitForJS: true,
		Selectors: []strategy.SelectorGroup{
			{
				Kind:      strategy.KindTournament,
				Selectors: []string{"table.tournament-schedule tr", "table[class*='tournament'] tr", ".schedule-table tr", "table tbody tr"},
				Keywords:  pokerStarsKeywords,
			},
			{
				Kind: strategy.KindTournament,
				Selectors: []string{
					".tournament-card", ".event-card",
					"[class*='tournament-item']", "[class*='schedule-item']",
					"[data-tournament]",
				},
				Keywords: pokerStarsKeywords,
			},
		},
		Regex: RegexOptions{Tournaments: true},
		Embedded: strategy.EmbeddedConfig{
			Anchors: []strategy.Anchor{
				strategy.NewAnchor("tournaments", `"tournaments"\s*:`),
				strategy.NewAnchor("schedule", `"schedule"\s*:`),
				strategy.NewAnchor("events", `"events"\s*:`),
				strategy.NewAnchor("tournament data", `tournamentData\s*=`),
			},
		},
		Bounds:    parser.DefaultBounds().WithOverrides(parser.Bounds{BuyInMin: 1, BuyInMax: 50000}),
		Policy:    PolicyRunAll,
		CacheKey:  "pokerstars_cooldown",
		BlockTime: cfg.BlockTime,
	}
}

// siteBuilders maps providers to their site definitions
var siteBuilders = map[poker.Provider]func(*config.Config) Site{
	poker.ProviderClubGG:     ClubGGSite,
	poker.ProviderGGPoker:    GGPokerSite,
	poker.ProviderPokerStars: PokerStarsSite,
}

// SiteFor returns the site for provider with the configured bound
// overrides applied
func SiteFor(provider poker.Provider, cfg *config.Config) (Site, error) {
	build, ok := siteBuilders[provider]
	if !ok {
		return Site{}, fmt.Errorf("no scraper for provider %s", provider)
	}
	site := build(cfg)
	site.Bounds = site.Bounds.WithOverrides(parser.Bounds{
		BuyInMin:  cfg.BuyInMin,
		BuyInMax:  cfg.BuyInMax,
		StakesMin: cfg.StakesMin,
		StakesMax: cfg.StakesMax,
	})
	return site, nil
}

// SupportedProviders lists the providers with a site definition, in a
// stable order
func SupportedProviders() []poker.Provider {
	return []poker.Provider{poker.ProviderClubGG, poker.ProviderGGPoker, poker.ProviderPokerStars}
}

func nonEmpty(urls ...string) []string {
	var out []string
	for _, u := range urls {
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}
