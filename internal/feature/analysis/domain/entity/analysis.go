package entity

// TextAnalysis は本文テキストの感情分類結果を表します。
type TextAnalysis struct {
	Sentiment  float64 // -1.0（ネガティブ）〜 +1.0（ポジティブ）
	Emotion    string  // 最上位の感情ラベル（joy, sadness など）
	Confidence float64 // 最上位感情ラベルのスコア
}

// FaceEmotion は顔写真から検出した感情を表します。
type FaceEmotion struct {
	Emotion    string  // happy, sad, angry, surprise, neutral
	Confidence float64 // 顔検出の信頼度
}

// EntryAnalysis はテキストと顔写真の分析を統合した最終結果です。
type EntryAnalysis struct {
	Sentiment    float64 // 統合後の感情スコア（-1.0〜+1.0）
	Emotion      string  // 採用された感情ラベル
	TextAnalyzed bool    // テキストが分析されたか
	FaceAnalyzed bool    // 顔写真が分析されたか
}
