package ocr

import (
	"reflect"
	"testing"
)

func TestDecodeAnnotation(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    *Result
		wantErr bool
	}{
		{
			name: "batch envelope",
			data: `{
				"responses": [
					{
						"textAnnotations": [
							{"description": "Compraste COP51.558,00 en EXITO SABANETA\n28/10/2025 20:33"},
							{"description": "Compraste"}
						],
						"logoAnnotations": [{"description": "Bancolombia", "score": 0.92}],
						"labelAnnotations": [
							{"description": "Receipt"},
							{"description": "Font"}
						]
					}
				]
			}`,
			want: &Result{
				Text:       "Compraste COP51.558,00 en EXITO SABANETA\n28/10/2025 20:33",
				LogoLabels: []string{"Bancolombia"},
				Labels:     []string{"Receipt", "Font"},
			},
		},
		{
			name: "bare single response",
			data: `{"textAnnotations": [{"description": "Total USD 1,234.56"}]}`,
			want: &Result{
				Text:       "Total USD 1,234.56",
				LogoLabels: []string{},
				Labels:     []string{},
			},
		},
		{
			name: "missing sections yield empty fields",
			data: `{}`,
			want: &Result{
				Text:       "",
				LogoLabels: []string{},
				Labels:     []string{},
			},
		},
		{
			name: "only labels",
			data: `{"labelAnnotations": [{"description": "Paper"}]}`,
			want: &Result{
				Text:       "",
				LogoLabels: []string{},
				Labels:     []string{"Paper"},
			},
		},
		{
			name:    "not json",
			data:    `this is not json`,
			wantErr: true,
		},
		{
			name:    "json array",
			data:    `[1, 2, 3]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeAnnotation([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeAnnotation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeAnnotation() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
