package attendance

import "errors"

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD between 1900 and 2200")
