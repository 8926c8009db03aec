package assets

// Shell holds the markup written around a rendered fragment.
type Shell struct {
	Name   string // identifier
	Header string // markup before the fragment
	Footer string // markup after the fragment
}

// DefaultShellName is the name of the built-in shell.
const DefaultShellName = "default"

// Shell part file names.
const (
	headerFile = "header.html"
	footerFile = "footer.html"
)
