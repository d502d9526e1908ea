package interp

// readProperty / writeProperty implement PropertyRef access against an
// Element's fixed property set (internal/parser/natives.go's
// propertySlots table names the same six properties).
func readProperty(el *Element, name string) Value {
	switch name {
	case "text":
		return StringValue(el.Text)
	case "color":
		return StringValue(el.Color)
	case "background_color":
		return StringValue(el.BackgroundColor)
	case "padding":
		return IntegerValue(el.Padding)
	case "max_width":
		return IntegerValue(el.MaxWidth)
	case "url":
		return StringValue(el.URL)
	default:
		return NoneValue()
	}
}

func writeProperty(el *Element, name string, v Value) error {
	switch name {
	case "text":
		el.SetText(v.S)
	case "color":
		return el.SetColor(v.S)
	case "background_color":
		return el.SetBackgroundColor(v.S)
	case "padding":
		el.SetPadding(v.I)
	case "max_width":
		el.SetMaxWidth(v.I)
	case "url":
		el.URL = v.S
	}
	return nil
}
