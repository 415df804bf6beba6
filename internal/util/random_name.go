package util

import (
	"fmt"
	"math/rand"
)

var random = rand.New(rand.NewSource(rand.Int63())) // nolint:gosec

var adjectives = []string{
	"Bluffing", "Raising", "Folding", "Limping", "Stacking", "Shoving", "Grinding", "Tilting", "Floating",
	"Trapping", "Slowrolling", "Sandbagging", "Hollywooding", "Checkraising", "Overbetting", "Coolered",
	"Rivered", "Lucky", "Unlucky", "Patient", "Fearless", "Loose", "Tight", "Aggressive", "Passive",
}

var nouns = []string{
	"Ace", "King", "Queen", "Jack", "Deuce", "Trey", "Nit", "Shark", "Fish", "Whale", "Donkey", "Maniac",
	"Rock", "Grinder", "Railbird", "Dealer", "Button", "Blind", "Kicker", "Gutshot", "Boat", "Wheel",
	"Cowboy", "Rocket", "Broadway",
}

// GetRandomName returns a random display name by combining an adjective with a poker noun
func GetRandomName() string {
	adjectivesIndex := random.Intn(len(adjectives))
	nounsIndex := random.Intn(len(nouns))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], nouns[nounsIndex])
}
