package parser

import (
	"encoding/json"
	"strings"
	"testing"
)

// topKinds lists the non-trivia children of the file node.
func topKinds(file *Node) []NodeKind {
	var kinds []NodeKind
	for _, child := range file.Children {
		if !child.IsTrivia() {
			kinds = append(kinds, child.Kind)
		}
	}
	return kinds
}

func TestParseOutlineTopLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []NodeKind
	}{
		{
			"empty",
			"",
			nil,
		},
		{
			"package imports class",
			"package a.b;\n\nimport java.util.List;\nimport static java.util.Map.*;\n\npublic class A {}\n",
			[]NodeKind{KindPackageDecl, KindImportList, KindClassDecl},
		},
		{
			"annotated interface and enum",
			"@FunctionalInterface\ninterface F { void f(); }\nenum E { A, B; int x; }\n",
			[]NodeKind{KindClassDecl, KindClassDecl},
		},
		{
			"annotation type",
			"public @interface Marker { String value() default \"\"; }",
			[]NodeKind{KindClassDecl},
		},
		{
			"record",
			"record Point(int x, int y) { }",
			[]NodeKind{KindClassDecl},
		},
		{
			"stray method after class",
			"class A {\n}\nvoid foo() {}\n",
			[]NodeKind{KindClassDecl, KindMethodDecl, KindError},
		},
		{
			"stray field after class",
			"class A {}\nint x = 1;\n",
			[]NodeKind{KindClassDecl, KindFieldDecl, KindError},
		},
		{
			"extra closing brace",
			"class A {}\n}\n",
			[]NodeKind{KindClassDecl, KindToken},
		},
		{
			"incomplete member",
			"class A {}\nint x\n",
			[]NodeKind{KindClassDecl, KindError},
		},
		{
			"modifiers before incomplete member",
			"class A {}\npublic static int x\n",
			[]NodeKind{KindClassDecl, KindModifiers, KindError},
		},
		{
			"member before class",
			"int x;\nclass A {}\n",
			[]NodeKind{KindFieldDecl, KindError, KindClassDecl},
		},
		{
			"incomplete member stops at class",
			"int x\nclass A {}\n",
			[]NodeKind{KindError, KindClassDecl},
		},
		{
			"unclosed class",
			"class A {\n  void f() {}\n",
			[]NodeKind{KindClassDecl},
		},
		{
			"garbage",
			"#",
			[]NodeKind{KindError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := ParseOutlineBytes([]byte(tt.input))
			got := topKinds(file)
			if len(got) != len(tt.want) {
				t.Fatalf("kinds = %v, want %v\n%s", got, tt.want, file)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("kind %d = %v, want %v\n%s", i, got[i], tt.want[i], file)
				}
			}
		})
	}
}

func TestParseOutlineKeepsEverySourceByte(t *testing.T) {
	inputs := []string{
		"package a;\nimport b.C;\n/** doc */\npublic final class A<T extends Comparable<T>> extends B implements C {\n  // comment\n  private int x = 1, y[] = {2};\n  static { init(); }\n  A() { super(); }\n  class Inner {}\n}\n",
		"class A {}\n\npublic static void main(String[] args) {\n  System.out.println(\"}\");\n}\n",
		"int x = \n",
		"}}} ;; class",
		"enum E { A { void f() {} }, B; }",
		"",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			file := ParseOutlineBytes([]byte(input))
			if got := file.Text(); got != input {
				t.Errorf("Text() = %q, want %q", got, input)
			}
			if file.Span.End.Offset != len(input) {
				t.Errorf("file ends at %d, want %d", file.Span.End.Offset, len(input))
			}
		})
	}
}

func TestParseOutlineClassMembers(t *testing.T) {
	src := `public class A<T> {
  @Deprecated
  private final Map<String, List<T>> index = new HashMap<>();
  static { load(); }
  public <R> R map(Function<T, R> f) throws IOException { return f.apply(null); }
  abstract void pending();
  class Inner { }
  int broken
}
`
	file := ParseOutlineBytes([]byte(src))
	cls := file.FirstChildOfKind(KindClassDecl)
	if cls == nil {
		t.Fatalf("no class in\n%s", file)
	}

	var got []NodeKind
	for _, child := range cls.Children {
		switch child.Kind {
		case KindFieldDecl, KindMethodDecl, KindInitializer, KindClassDecl, KindError:
			got = append(got, child.Kind)
		}
	}
	want := []NodeKind{KindFieldDecl, KindInitializer, KindMethodDecl, KindMethodDecl, KindClassDecl, KindError}
	if len(got) != len(want) {
		t.Fatalf("members = %v, want %v\n%s", got, want, file)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("member %d = %v, want %v", i, got[i], want[i])
		}
	}

	if _, rbrace := cls.ClassBraces(); rbrace == nil {
		t.Error("class body should be closed")
	}
}

func TestParseOutlineDeclarationShape(t *testing.T) {
	src := "class A {}\n@Override public <T> List<T> items() { return null; }\n"
	file := ParseOutlineBytes([]byte(src))
	decl := file.FirstChildOfKind(KindMethodDecl)
	if decl == nil {
		t.Fatalf("no method in\n%s", file)
	}

	var got []string
	for _, child := range decl.Children {
		if child.IsTrivia() {
			continue
		}
		if child.Kind == KindToken {
			got = append(got, child.TokenLiteral())
			continue
		}
		got = append(got, child.Kind.String())
	}
	want := "Modifiers TypeParameters List TypeArguments items ( ) { return null ; }"
	if strings.Join(got, " ") != want {
		t.Errorf("children = %q, want %q", strings.Join(got, " "), want)
	}

	errNode := file.FirstChildOfKind(KindError)
	if errNode == nil {
		t.Fatal("no error after the method")
	}
	if errNode.Span.Len() != 0 || errNode.Span.Start != decl.Span.End {
		t.Errorf("error span = %v-%v, want empty at %v", errNode.Span.Start, errNode.Span.End, decl.Span.End)
	}
	if errNode.Error.Message != ExpectedTypeDecl {
		t.Errorf("message = %q, want %q", errNode.Error.Message, ExpectedTypeDecl)
	}
}

func TestParseOutlineInitializerAngles(t *testing.T) {
	// A '<' after '=' is a comparison, not type arguments.
	file := ParseOutlineBytes([]byte("class A {}\nboolean b = x < y;\n"))
	decl := file.FirstChildOfKind(KindFieldDecl)
	if decl == nil {
		t.Fatalf("no field in\n%s", file)
	}
	if args := decl.FirstChildOfKind(KindTypeArguments); args != nil {
		t.Errorf("initializer produced type arguments: %s", args.Text())
	}
}

func TestParseOutlineReader(t *testing.T) {
	file, err := ParseOutline(strings.NewReader("class A {}"), WithFile("A.java"))
	if err != nil {
		t.Fatalf("ParseOutline: %v", err)
	}
	cls := file.FirstChildOfKind(KindClassDecl)
	if cls == nil {
		t.Fatalf("no class in\n%s", file)
	}
	if got := cls.Span.Start.File; got != "A.java" {
		t.Errorf("File = %q, want %q", got, "A.java")
	}
}

func TestNodeMarshalJSON(t *testing.T) {
	file := ParseOutlineBytes([]byte("class A {}\nint x;\n"))
	data, err := json.Marshal(file)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded struct {
		Kind     string `json:"kind"`
		Children []struct {
			Kind  string `json:"kind"`
			Error string `json:"error"`
		} `json:"children"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Kind != "File" {
		t.Errorf("kind = %q, want File", decoded.Kind)
	}
	if len(decoded.Children) != 3 {
		t.Fatalf("got %d children, want 3: %s", len(decoded.Children), data)
	}
	if decoded.Children[2].Error != ExpectedTypeDecl {
		t.Errorf("error = %q, want %q", decoded.Children[2].Error, ExpectedTypeDecl)
	}
}
