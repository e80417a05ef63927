package student

import (
	"sort"
	"strings"

	"github.com/trezcool/edutrack/core"
)

// Sort sorts students in place by the given orderings; unknown fields are ignored.
// Roll numbers are compared numerically where they contain digits ("2" < "10"), names case-insensitively.
func Sort(students []Student, orderings ...core.Ordering) {
	sort.SliceStable(students, func(i, j int) bool {
		for _, ord := range orderings {
			var c int
			switch ord.Field {
			case OrderByRoll:
				c = CompareRollNos(students[i].RollNo, students[j].RollNo)
			case OrderByName:
				c = strings.Compare(strings.ToLower(students[i].Name), strings.ToLower(students[j].Name))
			}
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}

// ByRoll sorts students in place by roll number, then by name.
func ByRoll(students []Student) {
	Sort(students, core.Ordering{Field: OrderByRoll, Ascending: true}, core.Ordering{Field: OrderByName, Ascending: true})
}

// CompareRollNos compares two roll numbers the way people read them:
// digit runs are compared by value and the rest lexically, so "A2" < "A10" and "9" < "010".
// Roll numbers equal by value ("007", "7") are then compared lexically to keep the order total.
func CompareRollNos(a, b string) int {
	ra, rb := splitRuns(a), splitRuns(b)
	for k := 0; k < len(ra) && k < len(rb); k++ {
		x, y := ra[k], rb[k]
		xNum, yNum := isDigits(x), isDigits(y)
		var c int
		switch {
		case xNum && yNum:
			c = compareNumeric(x, y)
		case xNum: // numbers first
			c = -1
		case yNum:
			c = 1
		default:
			c = strings.Compare(x, y)
		}
		if c != 0 {
			return c
		}
	}
	switch {
	case len(ra) < len(rb):
		return -1
	case len(ra) > len(rb):
		return 1
	}
	return strings.Compare(a, b)
}

// compareNumeric compares two digit strings of any length by value.
func compareNumeric(x, y string) int {
	x = strings.TrimLeft(x, "0")
	y = strings.TrimLeft(y, "0")
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	return strings.Compare(x, y)
}

// splitRuns splits `s` into alternating runs of digits and non-digits.
func splitRuns(s string) []string {
	var runs []string
	start := 0
	for i, r := range s {
		if i > 0 && isDigit(r) != isDigit(rune(s[i-1])) {
			runs = append(runs, s[start:i])
			start = i
		}
	}
	if start < len(s) {
		runs = append(runs, s[start:])
	}
	return runs
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isDigits(s string) bool {
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return s != ""
}
