package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/paycycle/internal/encoding"
)

const header = "Descrição;Montante\n"

func TestDecode(t *testing.T) {
	type testCase struct {
		name        string
		input       func(t *testing.T) []byte
		wantCharset string
		want        string
	}

	tests := []testCase{
		{
			name:        "UTF8Passthrough",
			input:       func(*testing.T) []byte { return []byte("Descrição;Montante\nCafé;12,50\nOperação;-3,00\n") },
			wantCharset: encoding.UTF8,
			want:        "Descrição;Montante\nCafé;12,50\nOperação;-3,00\n",
		},
		{
			name: "Windows1252",
			input: func(*testing.T) []byte {
				return []byte{
					'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';',
					'M', 'o', 'n', 't', 'a', 'n', 't', 'e', '\n',
				}
			},
			want: header,
		},
		{
			name:        "UTF8BOMStripped",
			input:       func(*testing.T) []byte { return append([]byte{0xEF, 0xBB, 0xBF}, header...) },
			wantCharset: encoding.UTF8,
			want:        header,
		},
		{
			name: "UTF16LEWithBOM",
			input: func(t *testing.T) []byte {
				b, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(header))
				require.NoError(t, err)

				return b
			},
			wantCharset: encoding.UTF16LE,
			want:        header,
		},
		{
			name:        "Empty",
			input:       func(*testing.T) []byte { return nil },
			wantCharset: encoding.UTF8,
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, charset, err := encoding.Decode(bytes.NewReader(tt.input(t)))
			require.NoError(t, err)

			// Legacy single-byte charsets are a heuristic guess.
			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, charset)
			}

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDecode_RuneSplitAtSniffWindow(t *testing.T) {
	// 4095 ASCII bytes followed by "ç" puts the rune across the 4096-byte window.
	input := strings.Repeat("a", 4095) + "ção\n"

	r, charset, err := encoding.Decode(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, encoding.UTF8, charset)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Latin1LongInput(t *testing.T) {
	utf8Text := strings.Repeat("Operação;Café;-3,00\n", 400)

	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8Text))
	require.NoError(t, err)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(latin1))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, utf8Text, string(got))
}
