package util

import (
	"fmt"
	"os"
	"sort"

	"golang.org/x/exp/constraints"
)

func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return fmt.Errorf("could not create output dir %v: %w", dir, err)
	}
	return nil
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func Min[A constraints.Integer | constraints.Float](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Clamp[A constraints.Integer | constraints.Float](num A, lo A, hi A) A {
	if num < lo {
		return lo
	}
	if num > hi {
		return hi
	}
	return num
}

func Reverse[A any](items []A) []A {
	res := make([]A, len(items))
	for i, v := range items {
		res[len(items)-1-i] = v
	}
	return res
}
