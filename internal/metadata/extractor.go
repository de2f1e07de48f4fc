package metadata

import (
	"regexp"
	"sort"
	"strings"

	"github.com/hackgrid/docindex/internal/core/domain"
)

// maxKeywords caps the extracted keyword list.
const maxKeywords = 20

// maxDescriptionLength caps the derived description.
const maxDescriptionLength = 200

// techPatterns maps a display name to a detection pattern.
var techPatterns = map[string]*regexp.Regexp{
	// Blockchain & smart contracts
	"Solidity":     regexp.MustCompile(`(?i)\b(solidity|pragma solidity)\b`),
	"Hardhat":      regexp.MustCompile(`(?i)\b(hardhat|@nomiclabs/hardhat)\b`),
	"Truffle":      regexp.MustCompile(`(?i)\btruffle\b`),
	"Foundry":      regexp.MustCompile(`(?i)\b(foundry|forge|cast)\b`),
	"OpenZeppelin": regexp.MustCompile(`(?i)\b(openzeppelin|@openzeppelin)\b`),
	"Ethers":       regexp.MustCompile(`(?i)\b(ethers\.js|ethers)\b`),
	"Web3":         regexp.MustCompile(`(?i)\bweb3(\.js)?\b`),

	// Frontend
	"React":   regexp.MustCompile(`(?i)\b(react|react\.js|next\.js|nextjs)\b`),
	"Vue":     regexp.MustCompile(`(?i)\b(vue|vue\.js|nuxt)\b`),
	"Angular": regexp.MustCompile(`(?i)\bangular\b`),

	// Backend
	"Node":   regexp.MustCompile(`(?i)\b(node\.js|nodejs|express)\b`),
	"Python": regexp.MustCompile(`(?i)\b(python|django|flask|fastapi)\b`),

	// Oracles & data
	"Chainlink": regexp.MustCompile(`(?i)\bchainlink\b`),
	"The Graph": regexp.MustCompile(`(?i)\b(the graph|graph protocol|subgraph)\b`),

	// Testing
	"Mocha":  regexp.MustCompile(`(?i)\bmocha\b`),
	"Chai":   regexp.MustCompile(`(?i)\bchai\b`),
	"Jest":   regexp.MustCompile(`(?i)\bjest\b`),
	"Waffle": regexp.MustCompile(`(?i)\bwaffle\b`),

	// Tools
	"Metamask": regexp.MustCompile(`(?i)\bmetamask\b`),
	"IPFS":     regexp.MustCompile(`(?i)\bipfs\b`),
	"Docker":   regexp.MustCompile(`(?i)\bdocker\b`),
}

// domainPatterns scores each candidate domain by pattern match count.
var domainPatterns = map[string][]*regexp.Regexp{
	"DeFi":            {regexp.MustCompile(`(?i)\b(defi|decentralized finance|dex|liquidity|yield|staking|lending|amm|swap)\b`)},
	"NFT":             {regexp.MustCompile(`(?i)\b(nft|erc-?721|erc-?1155|non-fungible|collectible|marketplace)\b`)},
	"Gaming":          {regexp.MustCompile(`(?i)\b(game|gaming|play-to-earn|p2e|metaverse)\b`)},
	"Infrastructure":  {regexp.MustCompile(`(?i)\b(infrastructure|node|validator|consensus|scaling|l2|layer 2|rollup)\b`)},
	"Oracles":         {regexp.MustCompile(`(?i)\b(oracle|chainlink|data feed|price feed|vrf|random)\b`)},
	"Smart Contracts": {regexp.MustCompile(`(?i)\b(smart contract|solidity|evm|contract|deployment)\b`)},
	"Tools":           {regexp.MustCompile(`(?i)\b(sdk|cli|library|framework|tool|development)\b`)},
	"DAO":             {regexp.MustCompile(`(?i)\b(dao|governance|voting|proposal)\b`)},
}

// keywordPatterns pick out common action and artifact terms.
var keywordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(deploy|deployment|compile|test|verify|audit)\b`),
	regexp.MustCompile(`(?i)\b(contract|interface|library|function|method)\b`),
	regexp.MustCompile(`(?i)\b(token|erc20|erc721|erc1155)\b`),
	regexp.MustCompile(`(?i)\b(wallet|transaction|gas|fee)\b`),
	regexp.MustCompile(`(?i)\b(event|emit|modifier|require)\b`),
	regexp.MustCompile(`(?i)\b(install|setup|configure|initialize)\b`),
	regexp.MustCompile(`(?i)\b(api|endpoint|request|response)\b`),
}

var (
	headingLine      = regexp.MustCompile(`(?m)^#{1,3}\s+(.+)$`)
	codeFenceLang    = regexp.MustCompile("```(\\w+)")
	numericOnly      = regexp.MustCompile(`^[0-9]+$`)
	firstParagraph   = regexp.MustCompile(`(?m)^#.+\n\n(.+?)(?:\n\n|$)`)
	headingMarkers   = regexp.MustCompile(`(?m)^#+\s+`)
	fencedCodeBlocks = regexp.MustCompile("(?s)```.*?```")
)

// languageAliases normalises code fence language tags.
var languageAliases = map[string]string{
	"js":   "javascript",
	"ts":   "typescript",
	"sol":  "solidity",
	"py":   "python",
	"rs":   "rust",
	"sh":   "shell",
	"bash": "shell",
	"yml":  "yaml",
}

// Extract analyses markdown content and returns document metadata.
// Frontmatter is consulted for the description only; use Merge to let
// frontmatter values override extracted ones.
func Extract(content string, frontmatter map[string]any) *domain.ExtractedMetadata {
	return &domain.ExtractedMetadata{
		TechStack:   extractTechStack(content),
		Keywords:    extractKeywords(content),
		Domain:      inferDomain(content),
		Languages:   extractLanguages(content),
		Description: generateDescription(content, frontmatter),
	}
}

// Merge overrides extracted values with frontmatter values where present.
func Merge(extracted *domain.ExtractedMetadata, frontmatter map[string]any) *domain.ExtractedMetadata {
	merged := *extracted

	if v := stringSlice(frontmatter["techStack"]); v != nil {
		merged.TechStack = v
	} else if v := stringSlice(frontmatter["tech_stack"]); v != nil {
		merged.TechStack = v
	}
	if v := stringSlice(frontmatter["keywords"]); v != nil {
		merged.Keywords = v
	}
	if v, ok := frontmatter["domain"].(string); ok && v != "" {
		merged.Domain = v
	}
	if v := stringSlice(frontmatter["languages"]); v != nil {
		merged.Languages = v
	}
	if v, ok := frontmatter["description"].(string); ok && v != "" {
		merged.Description = v
	}

	return &merged
}

func extractTechStack(content string) []string {
	var detected []string
	for tech, pattern := range techPatterns {
		if pattern.MatchString(content) {
			detected = append(detected, tech)
		}
	}
	// Map iteration order is random; keep output deterministic.
	sort.Strings(detected)
	return detected
}

func extractKeywords(content string) []string {
	seen := make(map[string]struct{})
	var keywords []string

	add := func(word string) {
		word = strings.ToLower(word)
		if _, ok := seen[word]; ok {
			return
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}

	for _, pattern := range keywordPatterns {
		for _, match := range pattern.FindAllString(content, -1) {
			add(match)
		}
	}

	// Heading words carry document-specific vocabulary.
	for _, match := range headingLine.FindAllStringSubmatch(content, -1) {
		for _, word := range strings.Fields(match[1]) {
			if len(word) > 3 && !numericOnly.MatchString(word) {
				add(word)
			}
		}
	}

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

func inferDomain(content string) string {
	best := ""
	bestScore := 0

	// Sorted candidate order keeps ties deterministic.
	candidates := make([]string, 0, len(domainPatterns))
	for name := range domainPatterns {
		candidates = append(candidates, name)
	}
	sort.Strings(candidates)

	for _, name := range candidates {
		score := 0
		for _, pattern := range domainPatterns[name] {
			score += len(pattern.FindAllString(content, -1))
		}
		if score > bestScore {
			best = name
			bestScore = score
		}
	}

	return best
}

func extractLanguages(content string) []string {
	seen := make(map[string]struct{})
	var languages []string

	for _, match := range codeFenceLang.FindAllStringSubmatch(content, -1) {
		lang := strings.ToLower(match[1])
		if normalized, ok := languageAliases[lang]; ok {
			lang = normalized
		}
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		languages = append(languages, lang)
	}

	return languages
}

func generateDescription(content string, frontmatter map[string]any) string {
	if desc, ok := frontmatter["description"].(string); ok && desc != "" {
		return desc
	}

	// First paragraph after the first heading.
	if m := firstParagraph.FindStringSubmatch(content); m != nil {
		return truncate(m[1], maxDescriptionLength)
	}

	// Fallback: leading content with markup stripped.
	clean := headingMarkers.ReplaceAllString(content, "")
	clean = fencedCodeBlocks.ReplaceAllString(clean, "")
	return strings.TrimSpace(truncate(clean, maxDescriptionLength))
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// stringSlice coerces frontmatter values ([]any or []string) to []string.
func stringSlice(v any) []string {
	switch vals := v.(type) {
	case []string:
		if len(vals) == 0 {
			return nil
		}
		return vals
	case []any:
		var out []string
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
