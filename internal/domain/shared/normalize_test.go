package shared

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "projector", NormalizeName("Projector"))
	assert.Equal(t, "projector", NormalizeName("  PROJECTOR  "))
	assert.Equal(t, "café", NormalizeName("Café"))
}

func TestNormalizeNameConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, "projector", NormalizeName("  PROJECTOR  "))
			}
		}()
	}
	wg.Wait()
}

func TestSameName(t *testing.T) {
	assert.True(t, SameName("Projector", "pRoJeCtOr"))
	assert.True(t, SameName(" projector", "Projector "))
	assert.False(t, SameName("Projector", "Projectors"))
}
