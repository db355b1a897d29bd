package parser

import (
	"testing"
)

func TestNodeKindString(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want string
	}{
		{KindError, "Error"},
		{KindFile, "File"},
		{KindPackageDecl, "PackageDecl"},
		{KindImportList, "ImportList"},
		{KindImportDecl, "ImportDecl"},
		{KindClassDecl, "ClassDecl"},
		{KindMethodDecl, "MethodDecl"},
		{KindFieldDecl, "FieldDecl"},
		{KindInitializer, "Initializer"},
		{KindModifiers, "Modifiers"},
		{KindTypeParameters, "TypeParameters"},
		{KindTypeArguments, "TypeArguments"},
		{KindToken, "Token"},
		{NodeKind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("NodeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestNodeAddChild(t *testing.T) {
	parent := &Node{Kind: KindClassDecl}
	child1 := &Node{Kind: KindMethodDecl}
	child2 := &Node{Kind: KindFieldDecl}

	parent.AddChild(child1)
	parent.AddChild(child2)
	parent.AddChild(nil)

	if len(parent.Children) != 2 {
		t.Errorf("Expected 2 children, got %d", len(parent.Children))
	}
	if parent.Children[0] != child1 {
		t.Error("First child mismatch")
	}
	if parent.Children[1] != child2 {
		t.Error("Second child mismatch")
	}
}

func TestNodeChildrenOfKind(t *testing.T) {
	method1 := &Node{Kind: KindMethodDecl}
	method2 := &Node{Kind: KindMethodDecl}
	field := &Node{Kind: KindFieldDecl}

	parent := &Node{
		Kind:     KindClassDecl,
		Children: []*Node{field, method1, method2},
	}

	if got := parent.FirstChildOfKind(KindMethodDecl); got != method1 {
		t.Error("Expected to find first method")
	}
	if got := parent.FirstChildOfKind(KindInitializer); got != nil {
		t.Error("Expected nil for non-existent kind")
	}
	if methods := parent.ChildrenOfKind(KindMethodDecl); len(methods) != 2 {
		t.Errorf("Expected 2 methods, got %d", len(methods))
	}
	if got := parent.ChildrenOfKind(KindInitializer); len(got) != 0 {
		t.Errorf("Expected empty slice, got %d elements", len(got))
	}
}

func TestNodeTokens(t *testing.T) {
	file := ParseOutlineBytes([]byte("class A { int x; }"))
	cls := file.FirstChildOfKind(KindClassDecl)
	if cls == nil {
		t.Fatalf("no class in\n%s", file)
	}

	if got := cls.FirstToken(TokenClass); got == nil || got.TokenLiteral() != "class" {
		t.Errorf("FirstToken(class) = %v", got)
	}
	if got := cls.LastToken(TokenRBrace); got == nil || got.Span.Start.Offset != 17 {
		t.Errorf("LastToken(}) = %v", got)
	}
	if got := cls.TokenKind(); got != TokenError {
		t.Errorf("TokenKind() of a declaration = %v, want %v", got, TokenError)
	}
	if got := cls.TokenLiteral(); got != "" {
		t.Errorf("TokenLiteral() of a declaration = %q, want empty", got)
	}
	if got := cls.Text(); got != "class A { int x; }" {
		t.Errorf("Text() = %q", got)
	}
}

func TestNodeClassBraces(t *testing.T) {
	tests := []struct {
		src        string
		wantLBrace bool
		wantRBrace bool
	}{
		{"class A { }", true, true},
		{"class A { void f() {} } // done", true, true},
		{"class A {\n  void f() {}\n", true, false},
		{"class A {", true, false},
		{"class A", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			file := ParseOutlineBytes([]byte(tt.src))
			cls := file.FirstChildOfKind(KindClassDecl)
			if cls == nil {
				t.Fatalf("no class in\n%s", file)
			}
			lbrace, rbrace := cls.ClassBraces()
			if (lbrace != nil) != tt.wantLBrace {
				t.Errorf("lbrace = %v, want present = %v", lbrace, tt.wantLBrace)
			}
			if (rbrace != nil) != tt.wantRBrace {
				t.Errorf("rbrace = %v, want present = %v", rbrace, tt.wantRBrace)
			}
		})
	}
}

func TestNodePathTo(t *testing.T) {
	file := ParseOutlineBytes([]byte("class A {\n  int x\n}\n"))
	cls := file.FirstChildOfKind(KindClassDecl)
	errNode := cls.FirstChildOfKind(KindError)
	if errNode == nil {
		t.Fatalf("no error in class body\n%s", file)
	}

	path := file.PathTo(errNode)
	if len(path) != 3 || path[0] != file || path[1] != cls || path[2] != errNode {
		t.Errorf("PathTo() = %v, want [file class error]", path)
	}

	stranger := &Node{Kind: KindError, Span: Span{Start: Position{Offset: 100}, End: Position{Offset: 101}}}
	if path := file.PathTo(stranger); path != nil {
		t.Errorf("PathTo(unrelated) = %v, want nil", path)
	}
}

func TestNodeWalkSkipsChildren(t *testing.T) {
	file := ParseOutlineBytes([]byte("class A { int x; }\nvoid f() {}\n"))

	var kinds []NodeKind
	file.Walk(func(n *Node) bool {
		if n.Kind == KindToken || n.IsTrivia() {
			return true
		}
		kinds = append(kinds, n.Kind)
		return n.Kind != KindClassDecl
	})

	want := []NodeKind{KindFile, KindClassDecl, KindMethodDecl, KindError}
	if len(kinds) != len(want) {
		t.Fatalf("visited %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("visit %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestNodeString(t *testing.T) {
	file := ParseOutlineBytes([]byte("class A {}\nint x;\n"))
	want := `File
  ClassDecl
    Token class
    Token A
    Token {
    Token }
  FieldDecl
    Token int
    Token x
    Token ;
  Error ERROR: class, interface, enum, or record expected
`
	if got := file.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}
