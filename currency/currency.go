// Package currency 提供固定汇率换算和货币格式化
// 金额统一以美元入库，仅在展示层按用户选择的币种换算
package currency

import (
	"fmt"
	"sort"

	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 各币种对美元的汇率（1 美元可兑换的数量）
var exchangeRates = map[string]float64{
	"USD": 1,
	"EUR": 0.85,
	"MXN": 18.5,
	"COP": 4200,
	"ARS": 350,
	"PEN": 3.7,
}

// Convert 将金额从 from 币种换算为 to 币种（经美元中转）
// from == to 时原样返回，不经过汇率表
// 未知币种按 1:1 处理，不报错（与客户端行为保持一致，测试覆盖该回退）
func Convert(amount float64, from, to string) float64 {
	if from == to {
		return amount
	}
	rateFrom, ok := exchangeRates[from]
	if !ok {
		rateFrom = 1
	}
	rateTo, ok := exchangeRates[to]
	if !ok {
		rateTo = 1
	}
	usd := amount / rateFrom
	return usd * rateTo
}

// Supported 判断币种代码是否在汇率表中
func Supported(code string) bool {
	_, ok := exchangeRates[code]
	return ok
}

// Codes 返回汇率表支持的币种代码（按字母序）
func Codes() []string {
	codes := make([]string, 0, len(exchangeRates))
	for code := range exchangeRates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

var printer = message.NewPrinter(language.EuropeanSpanish)

// Format 按西语区习惯格式化货币金额，如 "1.234,56"
// 无法解析的币种代码回退为 "金额 代码" 的形式
func Format(amount float64, code string) string {
	unit, err := xcurrency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%.2f %s", amount, code)
	}
	return printer.Sprintf("%v%.2f", xcurrency.Symbol(unit), amount)
}
