package bias

import "errors"

var errEmptyRanking = errors.New("model returned no labels")
