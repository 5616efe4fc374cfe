package reviews

// Languages are supported review languages in cycling order.
var Languages = []string{"en", "zh", "de", "fr", "es", "it"}

var templates = map[string][]string{
	"en": {
		"Excellent product, the quality is outstanding and the craftsmanship is exquisite.",
		"Beautiful piece, even nicer than on the pictures. The details are incredible.",
		"Second order already. Bought one for my mother and now one for myself.",
		"Lovely packaging, perfect as a gift. It gives real peace of mind.",
		"Very happy with it, fine work and natural details. Recommended it to friends.",
		"Pleasantly surprised when it arrived. Feels solid and authentic.",
		"Bought it for my husband and he wears it every day.",
		"Great quality for the price, I will order more gifts here.",
	},
	"zh": {
		"非常好的产品，质感很好，做工精细。",
		"比图片还要好看，细节处理得很到位。",
		"第二次购买了，上次给妈妈买的，这次给自己。",
		"包装很精美，送礼很有面子，让人安心。",
		"做工精细，纹理自然，已经推荐给朋友了。",
		"收到后很惊喜，质感扎实，很有分量。",
		"给老公买的，他每天都戴着。",
		"物超所值，还会回购。",
	},
	"de": {
		"Ausgezeichnetes Produkt, hervorragende Qualität und feine Verarbeitung.",
		"Wunderschönes Stück, noch besser als auf den Bildern.",
		"Schon die zweite Bestellung, diesmal für mich selbst.",
		"Schöne Verpackung, ideal als Geschenk.",
		"Sehr zufrieden, habe es schon Freunden empfohlen.",
	},
	"fr": {
		"Excellent produit, la qualité est remarquable et la finition soignée.",
		"Très bel article, encore mieux que sur les photos.",
		"Deuxième commande, cette fois pour moi.",
		"Bel emballage, parfait pour offrir.",
		"Très satisfaite, je l'ai déjà recommandé à des amis.",
	},
	"es": {
		"Excelente producto, la calidad es sobresaliente y el acabado exquisito.",
		"Muy bonito, aún mejor que en las fotos.",
		"Segunda compra, esta vez para mí.",
		"Empaque precioso, ideal para regalar.",
		"Muy satisfecho, ya se lo recomendé a mis amigos.",
	},
	"it": {
		"Prodotto eccellente, qualità eccezionale e lavorazione curata.",
		"Bellissimo, ancora meglio che nelle foto.",
		"Secondo acquisto, questa volta per me.",
		"Confezione splendida, perfetta da regalare.",
		"Molto soddisfatta, l'ho già consigliato agli amici.",
	},
}

var reviewerNames = []string{
	"Sarah M.", "Michael K.", "Emma L.", "James W.", "Sophia R.",
	"Oliver T.", "Isabella N.", "William H.", "Mia C.", "Benjamin F.",
	"Charlotte D.", "Lucas P.", "Harper S.", "Mason J.", "Evelyn A.",
	"张伟", "李芳", "王明", "陈静", "刘洋",
	"Hans M.", "Marie D.", "Pierre L.", "Anna S.", "Klaus B.",
}

var locations = []string{
	"United States", "Germany", "France", "United Kingdom", "Canada",
	"Australia", "Netherlands", "Spain", "Italy", "Sweden",
	"中国", "新加坡", "马来西亚", "日本", "韩国",
}
