package iocli

// IO abstracts terminal interaction so CLI commands can be tested
// without a real stdin/stdout.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}
