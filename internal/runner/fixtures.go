package runner

import (
	"fmt"
	"math/rand"

	"github.com/sdlp-org/sdlp-sub001/pkg/types"
)

// fixtureSeed keeps payload content identical across runs so results stay
// comparable.
const fixtureSeed = 0x5d1b

const fixtureCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 .,:-_/"

// BuildFixtures generates one deterministic payload per requested size. The
// content is text-like so compression behaves the way it does on real deep
// link payloads, rather than on all-zero or fully random bytes.
func BuildFixtures(sizes []int) []types.PayloadSizeTest {
	rng := rand.New(rand.NewSource(fixtureSeed))

	fixtures := make([]types.PayloadSizeTest, 0, len(sizes))
	for _, size := range sizes {
		data := make([]byte, size)
		for i := range data {
			data[i] = fixtureCharset[rng.Intn(len(fixtureCharset))]
		}
		fixtures = append(fixtures, types.PayloadSizeTest{
			Size:        size,
			Description: describeSize(size),
			Data:        data,
		})
	}
	return fixtures
}

func describeSize(size int) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B payload", size)
	case size%1024 == 0:
		return fmt.Sprintf("%d KiB payload", size/1024)
	default:
		return fmt.Sprintf("%.1f KiB payload", float64(size)/1024)
	}
}
