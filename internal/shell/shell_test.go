package shell

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klabast/wb-services/payday-calendar/internal/app"
)

const table2024 = `Month,Reminder date,Payday date
January,05.01.2024,10.01.2024
February,06.02.2024,09.02.2024
March,05.03.2024,08.03.2024
April,05.04.2024,10.04.2024
May,07.05.2024,10.05.2024
June,05.06.2024,10.06.2024
July,05.07.2024,10.07.2024
August,06.08.2024,09.08.2024
September,05.09.2024,10.09.2024
October,07.10.2024,10.10.2024
November,05.11.2024,08.11.2024
December,05.12.2024,10.12.2024`

type fakeStore struct {
	saved map[int]string
	err   error
}

func (f *fakeStore) Save(year int, csv string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.saved == nil {
		f.saved = make(map[int]string)
	}
	f.saved[year] = csv
	return filepath.Join("tables", "x.csv"), nil
}

func runShell(t *testing.T, input string, store Saver) string {
	t.Helper()
	var out strings.Builder
	sh := New(NewBufferedReader(strings.NewReader(input), &out), &out, store)
	require.NoError(t, sh.Run())
	return out.String()
}

func TestRunPrintsTable(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	out := runShell(t, "2024\n\nno\n", store)

	assert.True(t, strings.HasPrefix(out, PromptYear+table2024+"\n"+PromptSave+PromptContinue))
	assert.Empty(t, store.saved)
}

func TestRunSilentlyRepromptsNonNumericYear(t *testing.T) {
	t.Parallel()

	out := runShell(t, "abc\n\n20x4\n2024\nno\nno\n", &fakeStore{})

	assert.Equal(t, 4, strings.Count(out, PromptYear))
	assert.Equal(t, 1, strings.Count(out, "Month,Reminder date,Payday date"))
}

func TestRunReportsOutOfRangeYear(t *testing.T) {
	t.Parallel()

	out := runShell(t, "0\n2024\nno\nno\n", &fakeStore{})

	assert.Contains(t, out, "invalid date")
	assert.Equal(t, 2, strings.Count(out, PromptYear))
}

func TestRunSavesOnlyOnYes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		answer string
		saved  bool
	}{
		{"yes", true},
		{"YES", true},
		{"Yes", true},
		{"y", false},
		{"", false},
		{"no", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			store := &fakeStore{}
			runShell(t, "2024\n"+tt.answer+"\nno\n", store)
			_, ok := store.saved[2024]
			assert.Equal(t, tt.saved, ok)
		})
	}
}

func TestRunStopsOnlyOnNo(t *testing.T) {
	t.Parallel()

	// Anything but "no" asks for another table
	out := runShell(t, "2024\n\n\n2025\n\nnah\n2026\n\nNO\n", &fakeStore{})

	assert.Equal(t, 3, strings.Count(out, "Month,Reminder date,Payday date"))
	assert.Contains(t, out, "January,07.01.2025,10.01.2025")
}

func TestRunEndsOnEOF(t *testing.T) {
	t.Parallel()

	out := runShell(t, "2024\nyes\n", &fakeStore{})
	assert.True(t, strings.HasSuffix(out, PromptContinue))

	assert.Equal(t, PromptYear, runShell(t, "", &fakeStore{}))
}

func TestRunSaveFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	store := &fakeStore{err: errors.New("disk full")}
	out := runShell(t, "2024\nyes\n\n2025\nno\nno\n", store)

	assert.Contains(t, out, "Failed to save table: disk full")
	assert.Equal(t, 2, strings.Count(out, "Month,Reminder date,Payday date"))
}

func TestRunWritesTableFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "tables")
	store := app.NewTableStore(dir)
	out := runShell(t, "2024\nyes\nno\n", store)

	data, err := os.ReadFile(filepath.Join(dir, "2024.csv"))
	require.NoError(t, err)
	assert.Equal(t, table2024, string(data))
	assert.Contains(t, out, "Saved "+filepath.Join(dir, "2024.csv"))
}

func TestBufferedReaderLastLineWithoutNewline(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	r := NewBufferedReader(strings.NewReader("2024\r\nno"), &out)

	line, err := r.ReadLine("a: ")
	require.NoError(t, err)
	assert.Equal(t, "2024", line)

	line, err = r.ReadLine("b: ")
	require.NoError(t, err)
	assert.Equal(t, "no", line)

	_, err = r.ReadLine("c: ")
	assert.Error(t, err)
	assert.Equal(t, "a: b: c: ", out.String())
}

func TestRunComparesAnswersExactly(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	// " 2024" is not an integer, " yes" does not save, "no " does not stop
	out := runShell(t, " 2024\n2024\n yes\nno \n2025\nyes\nno\n", store)

	assert.Equal(t, 3, strings.Count(out, PromptYear))
	assert.Equal(t, 2, strings.Count(out, "Month,Reminder date,Payday date"))
	_, saved2024 := store.saved[2024]
	assert.False(t, saved2024)
	assert.Contains(t, store.saved, 2025)
}

func TestNewReaderWithoutTerminal(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	_, err = f.WriteString("2024\n")
	require.NoError(t, err)
	_, err = f.Seek(0, 0)
	require.NoError(t, err)
	defer f.Close()

	var out strings.Builder
	r, err := NewReader(f, &out)
	require.NoError(t, err)
	defer r.Close()

	line, err := r.ReadLine(PromptYear)
	require.NoError(t, err)
	assert.Equal(t, "2024", line)
	assert.Equal(t, PromptYear, out.String())
}
