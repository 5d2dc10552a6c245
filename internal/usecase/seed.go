package usecase

import "JaxSpot/internal/domain/models"

// SeedInstruments returns the starting board. Scores straddle every stage
// boundary so the simulator produces transitions in both directions early.
func SeedInstruments() []models.Instrument {
	return []models.Instrument{
		{Symbol: "BTC", Name: "Bitcoin", Icon: "₿", Score: 45, Stage: models.StageScanning, Price: 43250.0, Change24h: 2.5, Volume: "$28.5B", MarketCap: "$847B", Reasoning: "Monitoring on-chain metrics and sentiment analysis"},
		{Symbol: "AVAX", Name: "Avalanche", Icon: "🔺", Score: 35, Stage: models.StageScanning, Price: 36.8, Change24h: 4.1, Volume: "$580M", MarketCap: "$13.5B", Reasoning: "Below threshold, waiting for confirmation signals"},
		{Symbol: "ADA", Name: "Cardano", Icon: "₳", Score: 42, Stage: models.StageScanning, Price: 0.52, Change24h: -1.8, Volume: "$450M", MarketCap: "$18.2B", Reasoning: "Development activity increasing, monitoring for breakout"},
		{Symbol: "DOGE", Name: "Dogecoin", Icon: "Ð", Score: 38, Stage: models.StageScanning, Price: 0.085, Change24h: 1.2, Volume: "$680M", MarketCap: "$12.1B", Reasoning: "Social sentiment mixed, waiting for technical confirmation"},
		{Symbol: "LTC", Name: "Litecoin", Icon: "Ł", Score: 41, Stage: models.StageScanning, Price: 72.5, Change24h: 0.8, Volume: "$420M", MarketCap: "$5.4B", Reasoning: "Consolidation pattern forming, monitoring volume"},
		{Symbol: "SHIB", Name: "Shiba Inu", Icon: "🐕", Score: 33, Stage: models.StageScanning, Price: 0.0000098, Change24h: -2.1, Volume: "$180M", MarketCap: "$5.8B", Reasoning: "High volatility, waiting for stabilization signals"},
		{Symbol: "ETH", Name: "Ethereum", Icon: "Ξ", Score: 75, Stage: models.StageWatchlist, Price: 2650.0, Change24h: -1.2, Volume: "$15.2B", MarketCap: "$318B", Reasoning: "High DEX activity detected, positive sentiment score"},
		{Symbol: "MATIC", Name: "Polygon", Icon: "⬟", Score: 62, Stage: models.StageWatchlist, Price: 0.85, Change24h: -0.8, Volume: "$320M", MarketCap: "$7.8B", Reasoning: "Accumulation phase detected, monitoring for breakout"},
		{Symbol: "BNB", Name: "Binance Coin", Icon: "🟡", Score: 68, Stage: models.StageWatchlist, Price: 315.8, Change24h: 2.3, Volume: "$1.2B", MarketCap: "$47.2B", Reasoning: "Exchange volume increasing, bullish momentum building"},
		{Symbol: "XRP", Name: "XRP", Icon: "◉", Score: 71, Stage: models.StageWatchlist, Price: 0.63, Change24h: 3.7, Volume: "$1.8B", MarketCap: "$34.5B", Reasoning: "Legal clarity improving, institutional interest growing"},
		{Symbol: "DOT", Name: "Polkadot", Icon: "●", Score: 66, Stage: models.StageWatchlist, Price: 7.2, Change24h: 1.9, Volume: "$290M", MarketCap: "$9.2B", Reasoning: "Parachain activity increasing, ecosystem growth positive"},
		{Symbol: "UNI", Name: "Uniswap", Icon: "🦄", Score: 73, Stage: models.StageWatchlist, Price: 6.8, Change24h: 4.2, Volume: "$180M", MarketCap: "$4.1B", Reasoning: "DEX volume surging, governance proposals active"},
		{Symbol: "SOL", Name: "Solana", Icon: "◎", Score: 88, Stage: models.StageReady, Price: 98.5, Change24h: 5.8, Volume: "$2.8B", MarketCap: "$43B", Reasoning: "Confluence of high volume, DEX activity, and bullish sentiment"},
		{Symbol: "ARB", Name: "Arbitrum", Icon: "🔵", Score: 84, Stage: models.StageReady, Price: 1.25, Change24h: 8.3, Volume: "$420M", MarketCap: "$1.6B", Reasoning: "Layer 2 adoption accelerating, TVL growing rapidly"},
		{Symbol: "OP", Name: "Optimism", Icon: "🔴", Score: 82, Stage: models.StageReady, Price: 2.15, Change24h: 6.7, Volume: "$180M", MarketCap: "$2.2B", Reasoning: "Superchain narrative strong, developer activity high"},
		{Symbol: "SUI", Name: "Sui", Icon: "💧", Score: 86, Stage: models.StageReady, Price: 3.45, Change24h: 12.1, Volume: "$680M", MarketCap: "$9.8B", Reasoning: "Move language adoption, gaming ecosystem expanding"},
		{Symbol: "APT", Name: "Aptos", Icon: "🅰️", Score: 81, Stage: models.StageReady, Price: 8.9, Change24h: 9.4, Volume: "$320M", MarketCap: "$3.8B", Reasoning: "Technical breakout confirmed, institutional backing strong"},
		{Symbol: "LINK", Name: "Chainlink", Icon: "⬡", Score: 95, Stage: models.StagePurchased, Price: 14.25, Change24h: 3.2, Volume: "$485M", MarketCap: "$8.4B", Reasoning: "Position entered at optimal entry point"},
		{Symbol: "RNDR", Name: "Render Token", Icon: "🎨", Score: 96, Stage: models.StagePurchased, Price: 7.8, Change24h: 15.2, Volume: "$280M", MarketCap: "$2.9B", Reasoning: "AI narrative strong, GPU demand increasing"},
		{Symbol: "INJ", Name: "Injective", Icon: "⚡", Score: 94, Stage: models.StagePurchased, Price: 23.4, Change24h: 11.8, Volume: "$95M", MarketCap: "$2.1B", Reasoning: "DeFi hub gaining traction, cross-chain volume up"},
		{Symbol: "TIA", Name: "Celestia", Icon: "🌌", Score: 97, Stage: models.StagePurchased, Price: 5.2, Change24h: 18.7, Volume: "$180M", MarketCap: "$1.1B", Reasoning: "Modular blockchain thesis playing out, staking rewards high"},
		{Symbol: "JUP", Name: "JupiterAG", Icon: "🪐", Score: 98, Stage: models.StagePurchased, Price: 0.92, Change24h: 22.3, Volume: "$420M", MarketCap: "$1.2B", Reasoning: "Solana DEX aggregator dominance, airdrop momentum"},
	}
}

// SeedApps returns the default member app catalog.
func SeedApps() []*models.PlatformApp {
	return []*models.PlatformApp{
		{ID: "crypto-dashboard", Name: "JAX Crypto Dashboard", Description: "Real-time crypto trading signals", Icon: "📊", URL: "/", Category: "trading", RequiredTier: models.TierFree},
		{ID: "advanced-scanner", Name: "Advanced Scanner", Description: "AI-powered market scanner", Icon: "🔍", URL: "/scanner", Category: "trading", RequiredTier: models.TierHerd},
		{ID: "options-flow", Name: "Options Flow", Description: "Real-time options activity", Icon: "📈", URL: "/options", Category: "trading", RequiredTier: models.TierPro},
		{ID: "whale-tracker", Name: "Whale Tracker", Description: "Track large wallet movements", Icon: "🐋", URL: "/whales", Category: "trading", RequiredTier: models.TierElite},
		{ID: "portfolio-analyzer", Name: "Portfolio Analyzer", Description: "Advanced portfolio insights", Icon: "📊", URL: "/portfolio", Category: "analytics", RequiredTier: models.TierHerd},
		{ID: "backtester", Name: "Strategy Backtester", Description: "Test your trading strategies", Icon: "⚡", URL: "/backtest", Category: "analytics", RequiredTier: models.TierPro},
		{ID: "risk-calculator", Name: "Risk Calculator", Description: "Position sizing and risk management", Icon: "🛡️", URL: "/risk", Category: "analytics", RequiredTier: models.TierPro},
		{ID: "market-sentiment", Name: "Market Sentiment", Description: "AI sentiment analysis", Icon: "🧠", URL: "/sentiment", Category: "analytics", RequiredTier: models.TierElite},
		{ID: "discord-community", Name: "Discord Community", Description: "Join our trading community", Icon: "💬", URL: "https://discord.gg/jaxcrypto", Category: "community", RequiredTier: models.TierFree},
		{ID: "premium-chat", Name: "Premium Chat", Description: "Exclusive member discussions", Icon: "👥", URL: "/chat", Category: "community", RequiredTier: models.TierHerd},
		{ID: "live-calls", Name: "Live Trading Calls", Description: "Real-time trading sessions", Icon: "📞", URL: "/live", Category: "community", RequiredTier: models.TierPro},
		{ID: "elite-lounge", Name: "Elite Lounge", Description: "Exclusive whale discussions", Icon: "👑", URL: "/elite", Category: "community", RequiredTier: models.TierElite},
	}
}

// reasoningForStage is the note swapped in when an instrument changes stage.
func reasoningForStage(s models.Stage) string {
	switch s {
	case models.StageScanning:
		return "Score dropped below threshold, monitoring for re-entry"
	case models.StageWatchlist:
		return "Positive signals detected, moving to watchlist"
	case models.StageReady:
		return "Confluence of high volume, DEX activity, and bullish sentiment"
	case models.StagePurchased:
		return "Optimal entry conditions met, position entered"
	}
	return ""
}
