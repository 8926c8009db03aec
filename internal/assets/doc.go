// Package assets provides the document shells and extra CSS styles used to
// wrap rendered pqlite.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// The built-in "default" shell is fixed: documents wrapped with it are
// byte-for-byte identical from one release to the next. A custom directory
// may override it or add shells and styles of its own.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # extra CSS (e.g., print.css)
//	└── shells/
//	    └── {name}/
//	        ├── header.html      # everything before the rendered fragment
//	        └── footer.html      # everything after it
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
