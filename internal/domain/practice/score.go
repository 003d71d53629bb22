package practice

import "github.com/phrazzld/vocabvault/internal/domain"

// ApplyCorrect records a correct answer on the item, raising its score by one
// up to the maxScore cap. A score already at (or above) the cap is clamped to
// the cap. This and ApplyIncorrect are the only mutators of Item.Score.
func ApplyCorrect(item *domain.Item, maxScore int) {
	item.Score = min(item.Score+1, maxScore)
	item.Touch()
}

// ApplyIncorrect records an incorrect answer on the item, lowering its score
// by one. Scores have no floor and may go arbitrarily negative.
func ApplyIncorrect(item *domain.Item) {
	item.Score--
	item.Touch()
}
