package messages

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"auto_swiper/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const commentPrefix = "#"

const fileHeader = `# Custom messages for auto_swiper, one per line.
# Lines starting with '#' are ignored.
`

// Pool is a read-only set of candidate messages with random selection.
type Pool struct {
	messages []string
	rng      *rand.Rand
}

// NewPool - creates a pool over a fixed message list. The rng makes
// selection deterministic under a fixed seed.
func NewPool(msgs []string, rng *rand.Rand) *Pool {
	return &Pool{messages: msgs, rng: rng}
}

// Load reads the custom message file once at startup. A missing file is
// created pre-populated with the seed pool; the current run then uses the
// seed pool itself. A file with no usable lines also falls back to the seed.
func Load(path string, seed []string, rng *rand.Rand, logger *logrus.Logger) (interfaces.MessagePool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read message file %s: %w", path, err)
		}
		if werr := writeDefaultFile(path, seed); werr != nil {
			logger.WithError(werr).Warnf("Could not create message file %s", path)
		} else {
			logger.Infof("Created message file %s with %d example messages", path, len(seed))
		}
		return NewPool(seed, rng), nil
	}

	msgs := parse(string(data))
	if len(msgs) == 0 {
		logger.Warnf("Message file %s has no usable lines, using built-in pool", path)
		return NewPool(seed, rng), nil
	}

	logger.Infof("Loaded %d messages from %s", len(msgs), path)
	return NewPool(msgs, rng), nil
}

// Pick - returns one message chosen uniformly at random.
func (p *Pool) Pick() string {
	if len(p.messages) == 0 {
		return ""
	}
	return p.messages[p.rng.Intn(len(p.messages))]
}

// Size - returns the number of messages in the pool.
func (p *Pool) Size() int {
	return len(p.messages)
}

func parse(content string) []string {
	var msgs []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		msgs = append(msgs, line)
	}
	return msgs
}

func writeDefaultFile(path string, seed []string) error {
	var b strings.Builder
	b.WriteString(fileHeader)
	for _, msg := range seed {
		b.WriteString(msg)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// Ensure Pool implements the MessagePool interface
var _ interfaces.MessagePool = (*Pool)(nil)
