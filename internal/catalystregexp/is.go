package catalystregexp

func IsApp(name string) bool {
	return App.MatchString(name)
}
