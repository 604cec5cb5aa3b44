package indicator

import "github.com/amirphl/simple-indicators/internal/candle"

// The Calculate functions use Default(): two decimals, index-true alignment.

func CalculateSMA(candles []candle.Candle, period int) Series {
	return Default().SMA(candles, period)
}

func CalculateEMA(candles []candle.Candle, period int) Series {
	return Default().EMA(candles, period)
}

func CalculateRSI(candles []candle.Candle, period int) Series {
	return Default().RSI(candles, period)
}

func CalculateMACD(candles []candle.Candle, fast, slow, signal int) MACDResult {
	return Default().MACD(candles, fast, slow, signal)
}

func CalculateBollinger(candles []candle.Candle, period int, multiplier float64) BollingerResult {
	return Default().Bollinger(candles, period, multiplier)
}

func CalculateStochastic(candles []candle.Candle, kPeriod, dPeriod int) StochasticResult {
	return Default().Stochastic(candles, kPeriod, dPeriod)
}

func CalculateWilliamsR(candles []candle.Candle, period int) Series {
	return Default().WilliamsR(candles, period)
}
