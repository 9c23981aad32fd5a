//go:build !race

package vitals

func passwordHashCost() int {
	return 14
}
