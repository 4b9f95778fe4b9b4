package gen

func Version() string {
	return "development"
}
