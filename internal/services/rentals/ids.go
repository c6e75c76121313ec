package rentals

import (
	"fmt"
	"regexp"
	"strconv"
)

var rentalIDPattern = regexp.MustCompile(`R-(\d+)`)

// NextRentalID возвращает номер, следующий за last. Если last пуст или не
// содержит числа в формате R-N, нумерация начинается с R-0001.
func NextRentalID(last string) string {
	counter := 0
	if m := rentalIDPattern.FindStringSubmatch(last); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			counter = n
		}
	}
	return fmt.Sprintf("R-%04d", counter+1)
}
