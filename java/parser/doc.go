// Package parser provides an error-tolerant outline parser for Java source
// code.
//
// # Overview
//
// The outline parser only recognizes the declaration structure of a file:
// the package clause, imports, type declarations and the members of their
// bodies. Method bodies and initializers are kept as flat token runs. The
// tree preserves all source text, whitespace and comments included, so
// Text on the root reproduces the input byte for byte.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│  Outliner   │
//	│  (bytes)    │     │  (tokens)   │     │   (tree)    │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// # Error Nodes
//
// ParseOutline never fails on malformed input. Text that cannot be placed
// becomes a KindError node whose children are the tokens involved.
//
// Declarations found at file level, outside of any class, are kept the way
// an IDE parser reports them: a complete declaration becomes a FieldDecl or
// MethodDecl followed by an empty Error node; an incomplete one becomes an
// Error node holding its tokens, preceded by its modifier list:
//
//	File
//	├── ClassDecl
//	├── MethodDecl
//	│   ├── Token void
//	│   └── ...
//	└── Error("class, interface, enum, or record expected")
//
// A '}' or ';' at file level is kept as a bare token.
//
// # Node Kinds
//
//	KindFile, KindPackageDecl, KindImportList, KindImportDecl
//	KindClassDecl      class, interface, enum, record and @interface
//	KindFieldDecl, KindMethodDecl, KindInitializer
//	KindModifiers      modifier keywords and annotations
//	KindTypeParameters, KindTypeArguments
//	KindToken, KindWhitespace, KindComment
//	KindError
//
// # Example Usage
//
//	file, err := parser.ParseOutline(r, parser.WithFile("Main.java"))
//	if err != nil {
//		return err
//	}
//	fmt.Print(file.StringWithPositions())
package parser
