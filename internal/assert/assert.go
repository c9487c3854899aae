package assert

// NotNil panics when a required collaborator was not provided.
func NotNil(value any) {
	if value == nil {
		panic("expected value to be not nil")
	}
}
