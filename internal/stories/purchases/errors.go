package purchases

import (
	"errors"
	"fmt"
)

// ErrNotFound возвращается когда заявка не существует
var ErrNotFound = errors.New("purchase not found")

// AlreadyProcessedError возвращается при попытке обработать заявку,
// которая уже покинула статус pending
type AlreadyProcessedError struct {
	Status Status
}

func (e *AlreadyProcessedError) Error() string {
	return fmt.Sprintf("purchase already processed: %s", e.Status)
}

// AsAlreadyProcessed разворачивает ошибку до AlreadyProcessedError, если возможно
func AsAlreadyProcessed(err error) (*AlreadyProcessedError, bool) {
	var target *AlreadyProcessedError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
