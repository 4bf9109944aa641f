package update

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func commandTitle(err error) string {
	if err != nil {
		return "Command Failed"
	}
	return "Command"
}
