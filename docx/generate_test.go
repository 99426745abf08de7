package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"docxgen/common"
)

func mustOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestGenerateEmptyDocument(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "empty.docx")

	b := newTestBuilder(t)
	expectKind(t, b.Generate(context.Background(), out), InvalidArgument)
	if names := listDir(t, dir); len(names) != 0 {
		t.Errorf("files left after failed generate: %v", names)
	}
	expectKind(t, b.Generate(context.Background(), ""), InvalidArgument)
}

func TestGenerateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	pic := writePNG(t, dir, "pic.png", makeImage(640, 480, false))
	out := filepath.Join(dir, "out", "report.docx")

	b := newTestBuilder(t, WithTitle("Report"))
	mustOK(t, b.AddText("Hello <world> & \"friends\""))
	mustOK(t, b.AddFormattedText("Bold Red", true, false, false, 16, "ff0000"))
	mustOK(t, b.AddParagraphWithAlignment("centered", "center"))
	mustOK(t, b.AddParagraphWithAlignment("justified", "justify"))
	mustOK(t, b.AddBulletItem("bullet"))
	mustOK(t, b.AddNumberedItem("one"))
	mustOK(t, b.AddNumberedItem("two"))
	mustOK(t, b.AddText("tab\there\nnext line"))
	mustOK(t, b.AddNumberedItem("again one"))
	mustOK(t, b.AddImage(pic, 320, 240))
	mustOK(t, b.AddCustomTable(`[["a","b"],["c"]]`))

	if err := b.Generate(context.Background(), out); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	s, err := Inspect(out)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if s.Title != "Report" || s.Creator != "docxgen" {
		t.Errorf("title = %q, creator = %q", s.Title, s.Creator)
	}
	for _, name := range []string{partContentTypes, partRootRels, partCore, partApp, partDocument,
		partDocumentRels, partStyles, partNumbering, "word/media/image1.jpeg"} {
		if !s.HasPart(name) {
			t.Errorf("package has no %s", name)
		}
	}
	if s.Media != 1 {
		t.Errorf("Media = %d, want 1", s.Media)
	}

	paras := s.Paragraphs()
	if len(paras) != 10 {
		t.Fatalf("paragraph count = %d, want 10", len(paras))
	}
	want := []ParagraphInfo{
		{Text: "Hello <world> & \"friends\""},
		{Text: "Bold Red", Bold: true, SizePt: 16, Color: "FF0000"},
		{Text: "centered", Align: common.AlignmentCenter},
		{Text: "justified", Align: common.AlignmentJustify},
		{Text: "bullet", NumID: bulletNumID},
		{Text: "one", NumID: firstDecimalNumID},
		{Text: "two", NumID: firstDecimalNumID},
		{Text: "tab\there\nnext line"},
		{Text: "again one", NumID: firstDecimalNumID + 1},
		{Image: true},
	}
	for i := range want {
		if !reflect.DeepEqual(*paras[i], want[i]) {
			t.Errorf("paragraph %d = %+v, want %+v", i, *paras[i], want[i])
		}
	}

	tables := s.Tables()
	if len(tables) != 1 {
		t.Fatalf("table count = %d, want 1", len(tables))
	}
	// ragged rows are padded
	if wantCells := [][]string{{"a", "b"}, {"c", ""}}; !reflect.DeepEqual(tables[0].Cells, wantCells) {
		t.Errorf("Cells = %#v, want %#v", tables[0].Cells, wantCells)
	}

	if names := listDir(t, filepath.Dir(out)); !reflect.DeepEqual(names, []string{"report.docx"}) {
		t.Errorf("unexpected files in output directory: %v", names)
	}
}

func TestGenerateEmptyTable(t *testing.T) {
	out := filepath.Join(t.TempDir(), "table.docx")

	b := newTestBuilder(t)
	mustOK(t, b.AddTable(3, 3))
	mustOK(t, b.AddTable(1, 2))
	mustOK(t, b.Generate(context.Background(), out))

	s, err := Inspect(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Body) != 3 || s.Body[0].Table == nil || s.Body[1].Paragraph == nil || s.Body[2].Table == nil {
		t.Fatalf("adjacent tables are not separated: %+v", s.Body)
	}
	want := [][]string{{"", "", ""}, {"", "", ""}, {"", "", ""}}
	if !reflect.DeepEqual(s.Body[0].Table.Cells, want) {
		t.Errorf("Cells = %#v", s.Body[0].Table.Cells)
	}
	if s.HasPart(partNumbering) {
		t.Error("numbering part written for document without lists")
	}
}

func TestGenerateIsRepeatable(t *testing.T) {
	dir := t.TempDir()
	b := newTestBuilder(t)
	mustOK(t, b.AddText("same"))
	mustOK(t, b.AddNumberedItem("item"))

	first, second := filepath.Join(dir, "1.docx"), filepath.Join(dir, "2.docx")
	mustOK(t, b.Generate(context.Background(), first))
	mustOK(t, b.Generate(context.Background(), second))
	// overwrite in place
	mustOK(t, b.Generate(context.Background(), first))

	d1, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(d1, d2) {
		t.Error("repeated generate produced different packages")
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d after generate, want 2", b.Len())
	}
}

func TestGeneratePackageLayout(t *testing.T) {
	out := filepath.Join(t.TempDir(), "layout.docx")
	pic := writePNG(t, t.TempDir(), "pic.png", makeImage(32, 32, false))

	b := newTestBuilder(t)
	mustOK(t, b.AddImage(pic, 32, 32))
	mustOK(t, b.Generate(context.Background(), out))

	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("output is not a zip: %v", err)
	}
	defer zr.Close()

	if zr.File[0].Name != partContentTypes {
		t.Errorf("first entry = %s, want %s", zr.File[0].Name, partContentTypes)
	}
	for _, f := range zr.File {
		if !f.Modified.Equal(testCreated) {
			t.Errorf("%s modified = %v, want %v", f.Name, f.Modified, testCreated)
		}
		wantMethod := zip.Deflate
		if strings.HasPrefix(f.Name, mediaDir) {
			wantMethod = zip.Store
		}
		if f.Method != wantMethod {
			t.Errorf("%s method = %d, want %d", f.Name, f.Method, wantMethod)
		}
		if f.Name == partContentTypes {
			data, err := readEntry(f)
			if err != nil {
				t.Fatal(err)
			}
			for _, s := range []string{`Extension="jpeg"`, `ContentType="image/jpeg"`, `PartName="/word/document.xml"`} {
				if !strings.Contains(data, s) {
					t.Errorf("content types miss %s", s)
				}
			}
		}
		if f.Name == partDocument {
			data, err := readEntry(f)
			if err != nil {
				t.Fatal(err)
			}
			// 32 px = 304800 EMU, letter page
			for _, s := range []string{`cx="304800"`, `r:embed="rId2"`, `w:w="12240"`, `w:h="15840"`} {
				if !strings.Contains(data, s) {
					t.Errorf("document misses %s", s)
				}
			}
		}
	}
}

func readEntry(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func TestGenerateFixZip(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "fixed.docx")

	cfg := setupTestConfig(t)
	cfg.FixZip = true
	cfg.Paper = common.PaperSizeA4
	b := New(cfg, setupTestLogger(t))
	mustOK(t, b.AddText("fixed"))
	mustOK(t, b.Generate(context.Background(), out))

	s, err := Inspect(out)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if len(s.Paragraphs()) != 1 || s.Paragraphs()[0].Text != "fixed" {
		t.Errorf("unexpected body %+v", s.Body)
	}
	if names := listDir(t, dir); !reflect.DeepEqual(names, []string{"fixed.docx"}) {
		t.Errorf("temporary files left: %v", names)
	}
}

func TestGenerateCorruptImage(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "corrupt.docx")

	b := newTestBuilder(t)
	mustOK(t, b.AddText("before"))
	b.blocks = append(b.blocks, Image{Data: []byte("junk"), Format: common.ImageFormatJpeg, Width: 1, Height: 1})

	expectKind(t, b.Generate(context.Background(), out), SerializationFailure)
	if names := listDir(t, dir); len(names) != 0 {
		t.Errorf("files left after failed generate: %v", names)
	}
}

type unknownBlock struct{}

func (unknownBlock) isBlock() {}

func TestGenerateUnknownBlock(t *testing.T) {
	dir := t.TempDir()
	b := newTestBuilder(t)
	b.blocks = append(b.blocks, unknownBlock{})

	expectKind(t, b.Generate(context.Background(), filepath.Join(dir, "x.docx")), SerializationFailure)
	if names := listDir(t, dir); len(names) != 0 {
		t.Errorf("files left after failed generate: %v", names)
	}
}

func TestGenerateDestinationProblems(t *testing.T) {
	dir := t.TempDir()
	b := newTestBuilder(t)
	mustOK(t, b.AddText("x"))

	expectKind(t, b.Generate(context.Background(), dir), ResourceUnavailable)

	blocker := filepath.Join(dir, "file")
	mustOK(t, os.WriteFile(blocker, []byte("x"), 0644))
	expectKind(t, b.Generate(context.Background(), filepath.Join(blocker, "out.docx")), ResourceUnavailable)
}

func TestGenerateRejectsDirectoryLikePath(t *testing.T) {
	dir := t.TempDir()
	b := newTestBuilder(t)
	mustOK(t, b.AddText("x"))

	expectKind(t, b.Generate(context.Background(), filepath.Join(dir, "newdir")+string(os.PathSeparator)), InvalidArgument)
	if names := listDir(t, dir); len(names) != 0 {
		t.Errorf("failed generate created %v", names)
	}
}

func TestGenerateKeepsExistingOnFailure(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "keep.docx")
	mustOK(t, os.WriteFile(out, []byte("previous"), 0644))

	b := newTestBuilder(t)
	b.blocks = append(b.blocks, Image{Format: common.ImageFormatPng, Width: 1, Height: 1})
	expectKind(t, b.Generate(context.Background(), out), SerializationFailure)

	data, err := os.ReadFile(out)
	if err != nil || string(data) != "previous" {
		t.Errorf("existing file changed: %q, %v", data, err)
	}
}

func TestGenerateCanceled(t *testing.T) {
	dir := t.TempDir()
	b := newTestBuilder(t)
	mustOK(t, b.AddText("x"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := b.Generate(ctx, filepath.Join(dir, "x.docx"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Generate() error = %v, want context.Canceled", err)
	}
	if names := listDir(t, dir); len(names) != 0 {
		t.Errorf("files left after canceled generate: %v", names)
	}
}

func TestInspectFailures(t *testing.T) {
	dir := t.TempDir()
	_, err := Inspect(filepath.Join(dir, "missing.docx"))
	expectKind(t, err, ResourceUnavailable)

	// valid zip without document part
	path := filepath.Join(dir, "other.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, _ := zw.Create("readme.txt")
	_, _ = w.Write([]byte("hi"))
	mustOK(t, zw.Close())
	mustOK(t, f.Close())

	_, err = Inspect(path)
	expectKind(t, err, SerializationFailure)
}
