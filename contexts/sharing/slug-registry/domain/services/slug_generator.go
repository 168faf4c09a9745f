package services

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"

	"beastypage/contexts/sharing/slug-registry/domain/entities"
)

// SlugGenerator draws every character independently and uniformly from the
// alphabet.
type SlugGenerator struct {
	Random   io.Reader
	Alphabet string
	Length   int
}

func (g SlugGenerator) NewSlug() (string, error) {
	alphabet := g.Alphabet
	if alphabet == "" {
		alphabet = entities.SlugAlphabet
	}
	length := g.Length
	if length <= 0 {
		length = entities.SlugLength
	}
	if len(alphabet) < 2 {
		return "", errors.New("slug alphabet needs at least two symbols")
	}
	random := g.Random
	if random == nil {
		random = rand.Reader
	}

	size := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		index, err := rand.Int(random, size)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[index.Int64()]
	}
	return string(out), nil
}
