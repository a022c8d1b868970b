package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/fixnet/internal/importer"
	"github.com/MrJamesThe3rd/fixnet/internal/repair"
)

func TestParser_Parse(t *testing.T) {
	type args struct {
		csvContent string
	}

	type testCase struct {
		name    string
		args    args
		wantLen int
		verify  func(t *testing.T, got []repair.CreateParams)
		wantErr string
	}

	tests := []testCase{
		{
			name: "RussianHeaderWithPreamble",
			args: args{csvContent: `Выгрузка заявок;01.03.2025

Имя;Контакт;Бренд;Модель;Проблема;Цена
Иван;+79990000001;Apple;iPhone 12;Разбит экран;8000
Мария;+79990000002;Samsung;Galaxy A52;Батарея быстро разряжается;2 500,00
`},
			wantLen: 2,
			verify: func(t *testing.T, got []repair.CreateParams) {
				assert.Equal(t, repair.CreateParams{
					Name:               "Иван",
					Contact:            "+79990000001",
					DeviceBrand:        "Apple",
					DeviceModel:        "iPhone 12",
					ProblemDescription: "Разбит экран",
					EstimatedPrice:     "от 8 000 ₽",
				}, got[0])
				assert.Equal(t, "от 2 500 ₽", got[1].EstimatedPrice)
			},
		},
		{
			name: "MissingPriceIsEstimated",
			args: args{csvContent: `имя;контакт;бренд;модель;проблема;цена
Ольга;+79990000004;Другие;OnePlus 11;Упал в воду;
Пётр;+79990000005;Xiaomi;Redmi Note 12;не работает звук;  
`},
			wantLen: 2,
			verify: func(t *testing.T, got []repair.CreateParams) {
				assert.Equal(t, "от 2 500 ₽", got[0].EstimatedPrice)
				assert.Equal(t, "от 1 500 ₽", got[1].EstimatedPrice)
			},
		},
		{
			name: "NoPriceColumn",
			args: args{csvContent: `name;contact;device_brand;device_model;problem_description
Anna;anna@example.com;Huawei;P60;Дисплей мерцает
`},
			wantLen: 1,
			verify: func(t *testing.T, got []repair.CreateParams) {
				assert.Equal(t, "от 5 000 ₽", got[0].EstimatedPrice)
			},
		},
		{
			name: "FormattedPriceKept",
			args: args{csvContent: `name;contact;device_brand;device_model;problem_description;estimated_price
Anna;anna@example.com;Apple;iPhone 14;экран;от 8 000 ₽

Bob;bob@example.com;Apple;iPhone 14;звук;по договорённости
`},
			wantLen: 2,
			verify: func(t *testing.T, got []repair.CreateParams) {
				assert.Equal(t, "от 8 000 ₽", got[0].EstimatedPrice)
				assert.Equal(t, "по договорённости", got[1].EstimatedPrice)
			},
		},
		{
			name: "AmountSeparators",
			args: args{csvContent: `name;contact;device_brand;device_model;problem_description;estimated_price
A;a@example.com;Apple;iPhone 14;экран;1,500
B;b@example.com;Apple;iPhone 14;экран;12,500,000
C;c@example.com;Apple;iPhone 14;экран;1500,50
D;d@example.com;Apple;iPhone 14;экран;1,5,0
E;e@example.com;Apple;iPhone 14;экран;99999999999999999999999999
`},
			wantLen: 5,
			verify: func(t *testing.T, got []repair.CreateParams) {
				assert.Equal(t, "от 1 500 ₽", got[0].EstimatedPrice)
				assert.Equal(t, "от 12 500 000 ₽", got[1].EstimatedPrice)
				assert.Equal(t, "от 1 501 ₽", got[2].EstimatedPrice)
				assert.Equal(t, "1,5,0", got[3].EstimatedPrice)
				assert.Equal(t, "99999999999999999999999999", got[4].EstimatedPrice)
			},
		},
		{
			name: "MissingRequiredValue",
			args: args{csvContent: `Имя;Контакт;Бренд;Модель;Проблема
Иван;;Apple;;Разбит экран
`},
			wantErr: "row 2: missing контакт, модель",
		},
		{
			name:    "NoHeader",
			args:    args{csvContent: "a;b;c\n1;2;3\n"},
			wantErr: importer.ErrNoHeader.Error(),
		},
		{
			name:    "HeaderOnly",
			args:    args{csvContent: "Имя;Контакт;Бренд;Модель;Проблема\n"},
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := importer.NewParser().Parse(strings.NewReader(tt.args.csvContent))

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)

			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}

func TestParser_Windows1251(t *testing.T) {
	content := `Имя;Контакт;Бренд;Модель;Проблема;Цена
Иван Петров;+79990000001;Apple;iPhone 12;Разбит экран после падения, сенсор не реагирует;8000
Мария Иванова;+79990000002;Samsung;Galaxy A52;Батарея быстро разряжается и телефон выключается на морозе;
Сергей Смирнов;+79990000003;Xiaomi;Redmi Note 10;Не работает звук в динамике во время разговора;1500
`

	encoded, err := charmap.Windows1251.NewEncoder().String(content)
	require.NoError(t, err)

	got, err := importer.NewParser().Parse(bytes.NewReader([]byte(encoded)))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Иван Петров", got[0].Name)
	assert.Equal(t, "Разбит экран после падения, сенсор не реагирует", got[0].ProblemDescription)
	assert.Equal(t, "от 2 500 ₽", got[1].EstimatedPrice)
}
