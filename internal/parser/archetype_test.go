package parser

import "testing"

func TestDetectArchetypeSignature(t *testing.T) {
	cards := []string{"Lightning Bolt", "Lava Spike", "Rift Bolt", "Mountain", "Goblin Guide"}
	if got := DetectArchetype(cards); got != "Burn" {
		t.Errorf("DetectArchetype = %q, want Burn", got)
	}
}

func TestDetectArchetypeTooFewCards(t *testing.T) {
	if got := DetectArchetype([]string{"Island", "Mountain"}); got != "Unknown" {
		t.Errorf("DetectArchetype = %q, want Unknown", got)
	}
}

func TestDetectArchetypeLandDensityFallback(t *testing.T) {
	aggro := []string{"Goblin Guide", "Monastery Swiftspear", "Eidolon of the Great Revel", "Skewer the Critics", "Searing Blaze"}
	if got := DetectArchetype(aggro); got != "Aggro" {
		t.Errorf("DetectArchetype = %q, want Aggro", got)
	}
}

func TestDetectFormat(t *testing.T) {
	legacy := []string{"Force of Will", "Brainstorm", "Island"}
	if got := DetectFormat(legacy); got != "Legacy" {
		t.Errorf("DetectFormat = %q, want Legacy", got)
	}
	modern := []string{"Fatal Push", "Swamp"}
	if got := DetectFormat(modern); got != "Modern" {
		t.Errorf("DetectFormat = %q, want Modern", got)
	}
	if got := DetectFormat([]string{"Island"}); got != "Unknown" {
		t.Errorf("DetectFormat = %q, want Unknown", got)
	}
}
