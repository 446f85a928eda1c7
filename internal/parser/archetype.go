package parser

import (
	"sort"
	"strings"
)

// archetypeSignatures maps archetype names to signature cards. One hit is
// enough; ties prefer more hits, then the smaller (more specific) signature.
var archetypeSignatures = map[string][]string{
	"Murktide":       {"Murktide Regent", "Dragon's Rage Channeler"},
	"Hammer Time":    {"Colossus Hammer", "Puresteel Paladin", "Sigarda's Aid"},
	"Tron":           {"Urza's Tower", "Urza's Mine", "Urza's Power Plant", "Karn Liberated"},
	"Amulet Titan":   {"Amulet of Vigor", "Primeval Titan"},
	"Living End":     {"Living End", "Violent Outburst"},
	"Burn":           {"Lightning Bolt", "Lava Spike", "Rift Bolt"},
	"Death's Shadow": {"Death's Shadow", "Street Wraith"},
	"Yawgmoth":       {"Yawgmoth, Thran Physician", "Chord of Calling"},
	"Scales":         {"Hardened Scales", "Walking Ballista", "Arcbound Ravager"},
	"Rhinos":         {"Crashing Footfalls", "Shardless Agent"},
	"Scam":           {"Grief", "Undying Malice", "Ephemerate"},
	"4C Omnath":      {"Omnath, Locus of Creation", "Leyline Binding"},
	"Domain Zoo":     {"Leyline Binding", "Scion of Draco"},
	"Elementals":     {"Solitude", "Fury", "Risen Reef"},
	"Affinity":       {"Cranial Plating", "Ornithopter", "Mox Opal"},
	"Infect":         {"Glistener Elf", "Blighted Agent", "Inkmoth Nexus"},
	"Storm":          {"Grapeshot", "Gifts Ungiven", "Past in Flames"},
	"Mill":           {"Hedron Crab", "Archive Trap", "Visions of Beyond"},
	"Control":        {"Teferi, Hero of Dominaria", "Cryptic Command", "Supreme Verdict"},
	"Jund":           {"Tarmogoyf", "Dark Confidant", "Liliana of the Veil"},
}

var modernIndicators = []string{
	"Thoughtseize", "Fatal Push", "Lightning Bolt", "Counterspell",
	"Urza's Saga", "Ragavan, Nimble Pilferer", "Solitude", "Fury",
	"Grief", "Omnath, Locus of Creation", "Wrenn and Six",
	"Lurrus of the Dream-Den", "Mishra's Bauble", "Aether Vial",
}

var vintageLegacyIndicators = []string{
	"Black Lotus", "Mox Pearl", "Mox Sapphire", "Mox Jet",
	"Mox Ruby", "Mox Emerald", "Time Walk", "Ancestral Recall",
	"Force of Will", "Brainstorm", "Wasteland", "Daze",
}

var basicLandWords = []string{"Plains", "Island", "Swamp", "Mountain", "Forest", "Land"}

// DetectArchetype guesses a deck archetype from the cards a player played.
// Fewer than five distinct cards is not enough signal.
func DetectArchetype(cards []string) string {
	if len(cards) < 5 {
		return "Unknown"
	}
	seen := make(map[string]bool, len(cards))
	for _, c := range cards {
		seen[c] = true
	}

	type candidate struct {
		name    string
		hits    int
		sigSize int
	}
	var candidates []candidate
	for name, signature := range archetypeSignatures {
		hits := 0
		for _, card := range signature {
			if seen[card] {
				hits++
			}
		}
		if hits > 0 {
			candidates = append(candidates, candidate{name, hits, len(signature)})
		}
	}
	if len(candidates) > 0 {
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].hits != candidates[j].hits {
				return candidates[i].hits > candidates[j].hits
			}
			if candidates[i].sigSize != candidates[j].sigSize {
				return candidates[i].sigSize < candidates[j].sigSize
			}
			return candidates[i].name < candidates[j].name
		})
		return candidates[0].name
	}

	// No signature matched: coarse classification by land density.
	lands := 0
	for _, card := range cards {
		for _, word := range basicLandWords {
			if strings.Contains(card, word) {
				lands++
				break
			}
		}
	}
	switch {
	case lands < 10:
		return "Aggro"
	case lands > 25:
		return "Control"
	default:
		return "Midrange"
	}
}

// DetectFormat guesses the format from the combined card pool of a match.
func DetectFormat(cards []string) string {
	seen := make(map[string]bool, len(cards))
	for _, c := range cards {
		seen[c] = true
	}
	for _, card := range vintageLegacyIndicators {
		if seen[card] {
			return "Legacy"
		}
	}
	for _, card := range modernIndicators {
		if seen[card] {
			return "Modern"
		}
	}
	// Modern is the most common format on MTGO; default there with a
	// reasonable card sample.
	if len(cards) > 10 {
		return "Modern"
	}
	return "Unknown"
}
