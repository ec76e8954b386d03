package status

// IsInformational reports whether the code is in the 1xx range
func (c Code) IsInformational() bool {
	return c >= 100 && c < 200
}

func (c Code) IsSuccess() bool {
	return c >= 200 && c < 300
}

func (c Code) IsRedirect() bool {
	return c >= 300 && c < 400
}

func (c Code) IsClientError() bool {
	return c >= 400 && c < 500
}

func (c Code) IsServerError() bool {
	return c >= 500 && c < 600
}

// Valid reports whether the code belongs to any of the defined classes.
func (c Code) Valid() bool {
	return c >= 100 && c < 600
}

// IsBodyless reports whether a response with the code never carries a body,
// no matter what framing headers it has.
func IsBodyless(code Code) bool {
	return code.IsInformational() || code == NoContent || code == NotModified
}
