// Package selector picks the next batch of practice questions for a
// topic, blending levels around the learner's inferred target level and
// balancing the batch across difficulties.
package selector

import (
	"math"
	"math/rand/v2"

	"github.com/abhisek/prepiz/internal/progress"
	"github.com/abhisek/prepiz/internal/questions"
)

// Batch mix by difficulty. Each share is rounded up.
const (
	EasyShare   = 0.4
	MediumShare = 0.4
	HardShare   = 0.2
)

// Options narrows a selection.
type Options struct {
	// Level overrides target-level inference when in 1..3.
	Level int

	// Difficulty, when set, restricts candidates to that difficulty
	// across all levels and disables level mixing.
	Difficulty questions.Difficulty

	// ExcludeAnswered drops questions already in the topic's history.
	ExcludeAnswered bool

	// PrioritizeWeak moves questions tagged with weak tags to the front.
	PrioritizeWeak bool
}

// Profile is the read-only learner state a selection depends on.
type Profile struct {
	Level    int
	Accuracy float64
	Answered progress.StringSet
	WeakTags []string
}

// ProfileOf builds a Profile from a topic's progress. A nil topic yields
// a level-1 profile with no history.
func ProfileOf(tp *progress.TopicProgress) Profile {
	if tp == nil {
		return Profile{Level: 1, Answered: progress.NewStringSet()}
	}
	return Profile{
		Level:    tp.Level,
		Accuracy: tp.Accuracy,
		Answered: tp.AnsweredIDs(),
		WeakTags: tp.WeakTags(),
	}
}

// TargetLevel infers the level to practise at from the stored level and
// accuracy. It never changes the stored level.
func TargetLevel(level int, accuracy float64) int {
	switch {
	case level <= 1:
		return 1
	case level == 2:
		switch {
		case accuracy >= 0.80:
			return 3
		case accuracy < 0.60:
			return 1
		default:
			return 2
		}
	default:
		if accuracy < 0.70 {
			return 2
		}
		return 3
	}
}

// Selector draws batches using an injected random source.
type Selector struct {
	rng *rand.Rand
}

// New returns a Selector. A nil rng is replaced with a randomly seeded one.
func New(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{rng: rng}
}

// Select returns up to count questions from pool, shuffled. An empty
// candidate pool yields an empty batch.
func (s *Selector) Select(pool []questions.Question, count int, p Profile, opts Options) []questions.Question {
	if count <= 0 {
		return []questions.Question{}
	}

	target := opts.Level
	if target < 1 || target > 3 {
		target = TargetLevel(p.Level, p.Accuracy)
	}

	var candidates []questions.Question
	if opts.Difficulty != "" {
		for _, q := range pool {
			if q.Difficulty == opts.Difficulty {
				candidates = append(candidates, q)
			}
		}
	} else {
		candidates = s.mix(pool, target, p.Accuracy)
	}

	if opts.ExcludeAnswered && len(p.Answered) > 0 {
		kept := candidates[:0:0]
		for _, q := range candidates {
			if !p.Answered.Has(q.ID) {
				kept = append(kept, q)
			}
		}
		candidates = kept
	}

	if len(candidates) == 0 {
		return []questions.Question{}
	}

	s.shuffle(candidates)
	if opts.PrioritizeWeak && len(p.WeakTags) > 0 {
		candidates = weakFirst(candidates, progress.NewStringSet(p.WeakTags...))
	}

	batch := fill(candidates, count)
	s.shuffle(batch)
	return batch
}

// mix builds the candidate pool for target, adding a share of the level
// below so difficulty does not jump.
func (s *Selector) mix(pool []questions.Question, target int, accuracy float64) []questions.Question {
	byLevel := make(map[int][]questions.Question)
	for _, q := range pool {
		lvl := q.EffectiveLevel()
		byLevel[lvl] = append(byLevel[lvl], q)
	}

	var share float64
	switch target {
	case 1:
		return append([]questions.Question(nil), byLevel[1]...)
	case 2:
		share = 0.10
		if accuracy < 0.70 {
			share = 0.30
		}
	default:
		share = 0.20
		if accuracy < 0.80 {
			share = 0.40
		}
	}

	lower := append([]questions.Question(nil), byLevel[target-1]...)
	s.shuffle(lower)
	n := int(math.Ceil(share * float64(len(lower))))

	out := make([]questions.Question, 0, n+len(byLevel[target]))
	out = append(out, lower[:n]...)
	out = append(out, byLevel[target]...)
	return out
}

// weakFirst is a stable partition: questions touching a weak tag first.
func weakFirst(qs []questions.Question, weak progress.StringSet) []questions.Question {
	out := make([]questions.Question, 0, len(qs))
	var rest []questions.Question
	for _, q := range qs {
		if q.HasAnyTag(weak) {
			out = append(out, q)
		} else {
			rest = append(rest, q)
		}
	}
	return append(out, rest...)
}

// fill takes each difficulty's quota in candidate order, then backfills
// short buckets from the remaining candidates.
func fill(candidates []questions.Question, count int) []questions.Question {
	quota := map[questions.Difficulty]int{
		questions.Easy:   int(math.Ceil(EasyShare * float64(count))),
		questions.Medium: int(math.Ceil(MediumShare * float64(count))),
		questions.Hard:   int(math.Ceil(HardShare * float64(count))),
	}

	used := make([]bool, len(candidates))
	batch := make([]questions.Question, 0, count)

	for _, d := range questions.Difficulties {
		need := quota[d]
		for i, q := range candidates {
			if need == 0 {
				break
			}
			if !used[i] && q.Difficulty == d {
				used[i] = true
				batch = append(batch, q)
				need--
			}
		}
	}

	for i, q := range candidates {
		if len(batch) >= count {
			break
		}
		if !used[i] {
			used[i] = true
			batch = append(batch, q)
		}
	}

	if len(batch) > count {
		batch = batch[:count]
	}
	return batch
}

func (s *Selector) shuffle(qs []questions.Question) {
	s.rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
}
