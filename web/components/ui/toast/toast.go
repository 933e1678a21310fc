// Package toast renders small dismissible notifications for HTMX swaps.
package toast

import twmerge "github.com/Oudwins/tailwind-merge-go"

type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

type Position string

const (
	PositionTopRight    Position = "top-right"
	PositionBottomRight Position = "bottom-right"
	PositionBottomLeft  Position = "bottom-left"
)

type Props struct {
	Title         string
	Description   string
	Variant       Variant
	Position      Position
	Duration      int // milliseconds, 0 keeps the toast until dismissed
	Dismissible   bool
	ShowIndicator bool
	Icon          bool
}

var variantClasses = map[Variant]string{
	VariantSuccess: "border-green-500 bg-green-50 text-green-900",
	VariantError:   "border-red-500 bg-red-50 text-red-900",
	VariantWarning: "border-amber-500 bg-amber-50 text-amber-900",
	VariantInfo:    "border-blue-500 bg-blue-50 text-blue-900",
}

var variantIcons = map[Variant]string{
	VariantSuccess: "✓",
	VariantError:   "✕",
	VariantWarning: "!",
	VariantInfo:    "i",
}

var positionClasses = map[Position]string{
	PositionTopRight:    "top-4 right-4",
	PositionBottomRight: "bottom-4 right-4",
	PositionBottomLeft:  "bottom-4 left-4",
}

func (p Props) variant() Variant {
	if _, ok := variantClasses[p.Variant]; ok {
		return p.Variant
	}
	return VariantSuccess
}

func (p Props) class() string {
	position, ok := positionClasses[p.Position]
	if !ok {
		position = positionClasses[PositionBottomRight]
	}
	return twmerge.Merge("fixed z-50 flex w-80 items-start gap-3 rounded-md border p-4 shadow-lg",
		position, variantClasses[p.variant()])
}
