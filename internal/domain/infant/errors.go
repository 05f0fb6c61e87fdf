package infant

import "errors"

var ErrInfantNotFound = errors.New("infant not found")
