// Package chart derives theme-aware chart options from shared state and
// renders distribution charts.
package chart

import (
	"github.com/okian/assetlens/internal/reactive"
)

// DarkModeSource exposes the shared dark-mode flag. *appstore.Store satisfies it.
type DarkModeSource interface {
	reactive.Source
	IsDark() bool
}

// UseChartOption memoizes source(isDark) against the shared dark-mode flag.
//
// The result is recomputed lazily after the flag, or any of deps, changes.
// deps must list every other reactive input source reads; it is not
// discovered automatically. Repeated Get calls between changes return the
// identical cached value.
func UseChartOption[T any](store DarkModeSource, source func(isDark bool) T, deps ...reactive.Source) *reactive.Computed[T] {
	sources := make([]reactive.Source, 0, len(deps)+1)
	sources = append(sources, store)
	sources = append(sources, deps...)
	return reactive.NewComputed("chart_option", func() T {
		return source(store.IsDark())
	}, sources...)
}
