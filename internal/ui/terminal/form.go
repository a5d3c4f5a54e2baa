package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"recipe-finder/internal/core/finder"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// errClosed 輸入結束
var errClosed = errors.New("input closed")

// Form 終端互動表單
type Form struct {
	controller *finder.Controller
	vocab      config.VocabularyConfig
	in         *bufio.Reader
	out        io.Writer
}

// NewForm 創建終端表單
func NewForm(controller *finder.Controller, vocab config.VocabularyConfig, in io.Reader, out io.Writer) *Form {
	return &Form{
		controller: controller,
		vocab:      vocab,
		in:         bufio.NewReader(in),
		out:        out,
	}
}

// Run 執行表單，直到使用者離開或輸入結束
func (f *Form) Run(ctx context.Context) error {
	fmt.Fprintln(f.out, "Recipe Generator")
	fmt.Fprintln(f.out, strings.Repeat("=", 16))

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		input, err := f.readForm()
		if err != nil {
			if errors.Is(err, errClosed) {
				return nil
			}
			return err
		}

		if err := f.submit(ctx, input); err != nil {
			if errors.Is(err, errClosed) {
				return nil
			}
			return err
		}

		again, err := f.confirm("Search again? [y/N]: ")
		if err != nil || !again {
			if errors.Is(err, errClosed) || err == nil {
				return nil
			}
			return err
		}
	}
}

// readForm 依序讀取表單欄位
func (f *Form) readForm() (finder.FormInput, error) {
	var in finder.FormInput
	var err error

	if in.Cuisine, err = f.choose("Cuisine", f.vocab.Cuisines); err != nil {
		return in, err
	}
	if in.Diet, err = f.choose("Diet", f.vocab.Diets); err != nil {
		return in, err
	}
	if in.Ingredients, err = f.prompt("Ingredients (separate multiple ingredients with commas): "); err != nil {
		return in, err
	}
	if in.MaxCalories, err = f.prompt("Max Calories: "); err != nil {
		return in, err
	}
	if in.MaxFat, err = f.prompt("Max Fat (g): "); err != nil {
		return in, err
	}
	if in.Number, err = f.prompt("Number of Recipes: "); err != nil {
		return in, err
	}
	return in, nil
}

// submit 送出搜尋並顯示結果；成功時整段輸出，失敗時只顯示錯誤
func (f *Form) submit(ctx context.Context, input finder.FormInput) error {
	outcome, err := f.controller.Search(ctx, input)
	if err != nil {
		f.showError(finder.SearchErrorMessage(err))
		return nil
	}

	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, strings.TrimRight(outcome.Text, "\n"))
	fmt.Fprintln(f.out)

	if outcome.Selection != nil {
		return f.saveDialog(ctx, outcome.Selection)
	}
	return nil
}

// saveDialog 購物清單對話框；未選擇就確認時顯示錯誤並保持開啟
func (f *Form) saveDialog(ctx context.Context, sel *finder.Selection) error {
	fmt.Fprintln(f.out, "Select recipes to save shopping lists:")
	for i, label := range sel.Labels() {
		fmt.Fprintf(f.out, "  %d) %s\n", i+1, label)
	}

	for {
		line, err := f.prompt("Recipes to save (e.g. 1,3; q to close): ")
		if err != nil {
			return err
		}
		if strings.EqualFold(line, "q") {
			return nil
		}

		indices, err := parseSelection(line)
		if err != nil {
			f.showError(err.Error())
			continue
		}

		report, err := f.controller.SaveShoppingLists(ctx, sel, indices)
		if err != nil {
			f.showError(err.Error())
			continue
		}

		for _, w := range report.Warnings {
			fmt.Fprintf(f.out, "Warning: %s\n", w)
		}
		if report.Message != "" {
			fmt.Fprintf(f.out, "Success: %s\n", report.Message)
		}
		return nil
	}
}

// choose 下拉選單：可輸入編號或直接輸入值，空白代表 None
func (f *Form) choose(label string, options []string) (string, error) {
	fmt.Fprintf(f.out, "%s:\n", label)
	fmt.Fprintf(f.out, "  0) %s\n", finder.NoneChoice)
	for i, opt := range options {
		fmt.Fprintf(f.out, "  %d) %s\n", i+1, opt)
	}

	line, err := f.prompt(fmt.Sprintf("%s [%s]: ", label, finder.NoneChoice))
	if err != nil {
		return "", err
	}
	return resolveChoice(line, options), nil
}

// resolveChoice 將輸入轉為選項值
func resolveChoice(line string, options []string) string {
	if line == "" {
		return finder.NoneChoice
	}
	if n, err := strconv.Atoi(line); err == nil {
		if n == 0 {
			return finder.NoneChoice
		}
		if n >= 1 && n <= len(options) {
			return options[n-1]
		}
	}
	for _, opt := range options {
		if strings.EqualFold(opt, line) {
			return opt
		}
	}
	return line
}

// parseSelection 解析以逗號分隔的編號（從 1 開始）為索引
func parseSelection(line string) ([]int, error) {
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}
	var indices []int
	for _, part := range common.SplitAndTrim(line) {
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("Invalid selection %q.", part)
		}
		indices = append(indices, n-1)
	}
	return indices, nil
}

// prompt 顯示提示並讀取一行
func (f *Form) prompt(text string) (string, error) {
	fmt.Fprint(f.out, text)
	line, err := f.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		if err == io.EOF {
			fmt.Fprintln(f.out)
			return "", errClosed
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// confirm 是否確認
func (f *Form) confirm(text string) (bool, error) {
	line, err := f.prompt(text)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (f *Form) showError(msg string) {
	common.LogDebug("Form error shown", zap.String("message", msg))
	fmt.Fprintf(f.out, "Error: %s\n", msg)
}
