package patterns

// =============================================================================
// PATTERN DEFINITIONS BY CATEGORY
// All patterns are registered here and compiled once at package init.
// This provides a single source of truth for all threat patterns.
// The vocabularies cover English plus the major ASEAN languages (Indonesian,
// Thai, Vietnamese, Malay, Filipino, Burmese).
// =============================================================================

// --- SCAM / PRIZE / PHISHING PATTERNS ---
func (r *Registry) registerScamPatterns() {
	cat := CategoryScam

	// English/International
	r.register("scam_survey_prize", `(?i)(survey|sweeps|prize|winner|congratulations|claim|gift|reward|free)`, cat, 0.9, "Survey/prize scam vocabulary")
	r.register("scam_phone_brands", `(?i)(iphone|samsung|xiaomi|oppo|vivo|huawei|realme)`, cat, 0.9, "Phone giveaway bait brands")
	r.register("scam_networks", `(?i)(aucey|prizelogic|rewardzone|giftcenter|surveymonkey)`, cat, 0.9, "Known scam survey networks")

	// Indonesian
	r.register("scam_id_free_phone", `(?i)\b(hp|handphone).*(gratis|hadiah|menang)`, cat, 0.9, "Free phone bait (Indonesian)")
	r.register("scam_id_claim_win", `(?i)(selamat|klaim).*(menang|hadiah|prize)`, cat, 0.9, "Prize claim bait (Indonesian)")

	// Thai
	r.register("scam_th_survey", `(?i)(แบบสำรวจ|รางวัล|ชนะ|ฟรี|ได้รับ|โทรศัพท์)`, cat, 0.9, "Survey/prize vocabulary (Thai)")
	r.register("scam_th_claim", `(?i)(ยินดี|แจ้ง|รับรางวัล)`, cat, 0.9, "Prize claim bait (Thai)")

	// Vietnamese
	r.register("scam_vn_survey", `(?i)(khảo sát|giải thưởng|chiến thắng|miễn phí|điện thoại)`, cat, 0.9, "Survey/prize vocabulary (Vietnamese)")
	r.register("scam_vn_claim", `(?i)(chúc mừng|nhận thưởng|quà tặng)`, cat, 0.9, "Prize claim bait (Vietnamese)")

	// Malay
	r.register("scam_my_survey", `(?i)(tinjauan|hadiah|menang|percuma|telefon)`, cat, 0.9, "Survey/prize vocabulary (Malay)")
	r.register("scam_my_claim", `(?i)(tahniah|tuntut|terima)`, cat, 0.9, "Prize claim bait (Malay)")

	// Filipino
	r.register("scam_ph_survey", `(?i)(survey|premyo|panalo|libre|telepono)`, cat, 0.9, "Survey/prize vocabulary (Filipino)")
	r.register("scam_ph_claim", `(?i)(congratulations|kunin|tanggap)`, cat, 0.9, "Prize claim bait (Filipino)")

	// URL shapes used by scam campaigns
	r.register("scam_url_expiry", `(?i)expires?=\d+`, cat, 0.9, "Expiry parameter in URL")
	r.register("scam_url_tracking", `(?i)[?&](s|ssk|var|ymid|z|ref|utm)=\d+`, cat, 0.9, "Numeric campaign tracking keys")
	r.register("scam_luck_article", `(?i)(news|berita|artikel).*(keberuntungan|hoki|rejeki)`, cat, 0.9, "Luck-themed fake article")
	r.register("scam_kumar_secret", `(?i)(jkumar|kumar|news).*(rahasia|tersembunyi)`, cat, 0.9, "Hidden-secret fake news signature")
	r.register("scam_news_luck_path", `(?i)\.com/news/.*(keberuntungan|hoki|logo|visual)`, cat, 0.9, "Luck-themed news path")

	// Content-side scam phrasing (prize, financial, phishing)
	r.register("scam_congrats_winner", `(?i)(congratulations?|selamat|chúc mừng|tahniah|congratulation).{0,50}(winner|menang|thắng|pemenang)`, cat, 0.9, "Congratulations-winner phrasing")
	r.register("scam_you_won", `(?i)(you.{0,20}won|anda.{0,20}menang|bạn.{0,20}thắng).{0,50}(iphone|samsung|prize|hadiah)`, cat, 0.9, "You-won-a-device phrasing")
	r.register("scam_claim_now", `(?i)(claim.{0,20}now|klaim.{0,20}sekarang|nhận.{0,20}ngay)`, cat, 0.9, "Claim-now pressure")
	r.register("scam_survey_complete", `(?i)(survey.{0,30}complete|lengkapi.{0,20}survei|hoàn.{0,20}thành.{0,20}khảo.{0,20}sát)`, cat, 0.9, "Complete-the-survey phrasing")
	r.register("scam_guaranteed_profit", `(?i)(guaranteed.{0,20}profit|keuntungan.{0,20}pasti|lợi.{0,20}nhuận.{0,20}đảm.{0,20}bảo)`, cat, 0.9, "Guaranteed profit promise")
	r.register("scam_easy_money", `(?i)(easy.{0,20}money|uang.{0,20}mudah|tiền.{0,20}dễ.{0,20}dàng)`, cat, 0.9, "Easy money promise")
	r.register("scam_invest_now", `(?i)(invest.{0,20}now|investasi.{0,20}sekarang|đầu.{0,20}tư.{0,20}ngay)`, cat, 0.9, "Invest-now pressure")
	r.register("scam_double_money", `(?i)(double.{0,20}your.{0,20}money|gandakan.{0,20}uang|nhân.{0,20}đôi.{0,20}tiền)`, cat, 0.9, "Double-your-money promise")
	r.register("scam_daily_income", `(?i)(\$\d+.{0,20}per.{0,20}day|rp\s?\d+.{0,20}per.{0,20}hari|\d+.{0,20}vnd.{0,20}mỗi.{0,20}ngày)`, cat, 0.9, "Daily income promise")
	r.register("scam_verify_account", `(?i)(verify.{0,20}account|verifikasi.{0,20}akun|xác.{0,20}minh.{0,20}tài.{0,20}khoản)`, cat, 0.9, "Account verification phishing")
	r.register("scam_update_payment", `(?i)(update.{0,20}payment|perbarui.{0,20}pembayaran|cập.{0,20}nhật.{0,20}thanh.{0,20}toán)`, cat, 0.9, "Payment update phishing")
	r.register("scam_suspended_account", `(?i)(suspended.{0,20}account|akun.{0,20}ditangguhkan|tài.{0,20}khoản.{0,20}bị.{0,20}đình.{0,20}chỉ)`, cat, 0.9, "Suspended account phishing")
	r.register("scam_enter_password", `(?i)(enter.{0,20}password|masukkan.{0,20}kata.{0,20}sandi|nhập.{0,20}mật.{0,20}khẩu)`, cat, 0.9, "Password entry phishing")
	r.register("scam_confirm_identity", `(?i)(confirm.{0,20}identity|konfirmasi.{0,20}identitas|xác.{0,20}nhận.{0,20}danh.{0,20}tính)`, cat, 0.9, "Identity confirmation phishing")
}

// --- GAMBLING PATTERNS (ASEAN-wide, including disguised content) ---
func (r *Registry) registerGamblingPatterns() {
	cat := CategoryGambling

	// English/International
	r.register("gambling_en", `(?i)(slot|poker|casino|bet|betting|lottery|jackpot|bonus)`, cat, 0.8, "Gambling vocabulary (English)")
	r.register("gambling_operators", `(?i)(maxwin|gacor|withdraw|deposit|toto|naga|pragmatic)`, cat, 0.8, "Gambling operator slang")

	// Indonesian
	r.register("gambling_id", `(?i)(judi|taruhan|togel|bola|sbobet|bandar|agen|daftar)`, cat, 0.8, "Gambling vocabulary (Indonesian)")
	// Thai
	r.register("gambling_th", `(?i)(การพนัน|เดิมพัน|คาสิโน|สล็อต|หวย|บาคาร่า)`, cat, 0.8, "Gambling vocabulary (Thai)")
	// Vietnamese
	r.register("gambling_vn", `(?i)(cờ bạc|đánh bạc|casino|xổ số|baccarat|poker)`, cat, 0.8, "Gambling vocabulary (Vietnamese)")
	// Malay
	r.register("gambling_my", `(?i)(judi|pertaruhan|kasino|loteri|bola|4d|toto)`, cat, 0.8, "Gambling vocabulary (Malay)")
	// Filipino
	r.register("gambling_ph", `(?i)(sugal|pustahan|casino|lotto|sabong|bingo)`, cat, 0.8, "Gambling vocabulary (Filipino)")
	// Burmese
	r.register("gambling_mm", `(?i)(လောင်းကစား|ကစားခန်း)`, cat, 0.8, "Gambling vocabulary (Burmese)")

	// Numeric site-name patterns
	r.register("gambling_lucky_numbers", `(?i)\b(88|777|999|168|303|888|4d|6d)\w*\.(com|net|org|id|th|vn|my|ph|sg)`, cat, 0.8, "Lucky-number gambling domains")
	r.register("gambling_toto_brands", `(?i)(nagatoto|nagaslot|totoslot|slottoto|bolatangkas)`, cat, 0.8, "Toto/slot brand names")
	r.register("gambling_numeric_slot", `(?i)\b\d{2,4}(slot|toto|bet|win|4d)\b`, cat, 0.8, "Numeric slot site names")

	// Disguised gambling (fake luck/mysticism articles)
	r.register("gambling_luck_secrets", `(?i)(rahasia|tips|cara).*(keberuntungan|hoki|rejeki|nasib)`, cat, 0.8, "Luck-secret articles")
	r.register("gambling_lucky_logo", `(?i)(logo|visual|simbol).*(membawa|mendatangkan).*(keberuntungan|hoki)`, cat, 0.8, "Lucky-logo articles")
	r.register("gambling_fengshui", `(?i)(feng.?shui|numerologi|ramalan).*(angka|nomor|digit)`, cat, 0.8, "Feng shui number predictions")
	r.register("gambling_mystic", `(?i)(mistis|gaib|spiritual).*(kekuatan|energi|aura)`, cat, 0.8, "Mystic power articles")
	r.register("gambling_hidden_logo", `(?i)(tersembunyi|rahasia).*(balik|dibalik).*(logo|visual)`, cat, 0.8, "Hidden-behind-the-logo articles")

	// Content-side gambling phrasing
	r.register("gambling_slot_gacor", `(?i)(slot.{0,20}gacor|slot.{0,20}maxwin)`, cat, 0.8, "Slot gacor/maxwin phrasing")
	r.register("gambling_jackpot_today", `(?i)(jackpot.{0,20}hari.{0,20}ini|แจ็คพอต.{0,20}วันนี้)`, cat, 0.8, "Jackpot-today phrasing")
	r.register("gambling_keep_winning", `(?i)(menang.{0,20}terus|thắng.{0,20}liên.{0,20}tục|ชนะ.{0,20}ต่อเนื่อง)`, cat, 0.8, "Keep-winning phrasing")
	r.register("gambling_min_deposit", `(?i)(deposit.{0,20}minimal|ฝาก.{0,20}ขั้น.{0,20}ต่ำ|nạp.{0,20}tối.{0,20}thiểu)`, cat, 0.8, "Minimum deposit phrasing")
	r.register("gambling_instant_withdraw", `(?i)(withdraw.{0,20}langsung|ถอน.{0,20}ทันที|rút.{0,20}ngay.{0,20}lập.{0,20}tức)`, cat, 0.8, "Instant withdrawal phrasing")
	r.register("gambling_luck_symbol", `(?i)(keberuntungan|hoki|rejeki|nasib|peruntungan).{0,30}(logo|visual|simbol)`, cat, 0.8, "Luck-symbol phrasing")
	r.register("gambling_win_fast", `(?i)(rahasia|tips|cara).{0,30}(menang|untung|kaya|sukses).{0,30}(cepat|mudah|pasti)`, cat, 0.8, "Win-fast secret phrasing")
	r.register("gambling_kumar_luck", `(?i)(jkumar|kumar).{0,50}(keberuntungan|hoki|rejeki)`, cat, 0.8, "Kumar luck-article signature")
	r.register("gambling_news_luck", `(?i)/news/.{0,100}(keberuntungan|hoki|feng.?shui|numerologi)`, cat, 0.8, "Luck-themed news path")
	r.register("gambling_article_luck", `(?i)(berita|artikel|news).{0,50}(keberuntungan|hoki|rejeki|nasib)`, cat, 0.8, "Luck-themed articles")
}

// --- ADULT CONTENT PATTERNS (ASEAN-wide) ---
func (r *Registry) registerAdultPatterns() {
	cat := CategoryAdult

	// English/International
	r.register("adult_en", `(?i)(porn|xxx|sex|adult|nude|naked|erotic|mature|nsfw)`, cat, 0.9, "Adult vocabulary (English)")
	r.register("adult_sites", `(?i)(xnxx|pornhub|xvideos|redtube|onlyfans)`, cat, 0.9, "Known adult site names")
	// Indonesian
	r.register("adult_id", `(?i)(bokep|ngentot|memek|kontol|telanjang|bugil)`, cat, 0.9, "Adult vocabulary (Indonesian)")
	// Thai
	r.register("adult_th", `(?i)(โป๊|เซ็กส์|ผู้ใหญ่|เปลือย)`, cat, 0.9, "Adult vocabulary (Thai)")
	// Vietnamese
	r.register("adult_vn", `(?i)(khiêu dâm|sex|người lớn|khỏa thân)`, cat, 0.9, "Adult vocabulary (Vietnamese)")
	// Malay
	r.register("adult_my", `(?i)(lucah|seks|dewasa|bogel)`, cat, 0.9, "Adult vocabulary (Malay)")
	// Filipino
	r.register("adult_ph", `(?i)(bastos|libog|hubad|matanda)`, cat, 0.9, "Adult vocabulary (Filipino)")
	// Age restrictions
	r.register("adult_age_gate", `(?i)\b(18\+|21\+|mature|nsfw|adults?[_\s]?only)\b`, cat, 0.9, "Age restriction markers")

	// Content-side adult phrasing
	r.register("adult_free_porn", `(?i)(free.{0,20}porn|gratis.{0,20}bokep|โป๊.{0,20}ฟรี)`, cat, 0.9, "Free adult content bait")
	r.register("adult_18_content", `(?i)(18\+.{0,20}content|konten.{0,20}dewasa|nội.{0,20}dung.{0,20}người.{0,20}lớn)`, cat, 0.9, "18+ content phrasing")
	r.register("adult_live_cam", `(?i)(live.{0,20}cam|webcam.{0,20}langsung|cam.{0,20}trực.{0,20}tiếp)`, cat, 0.9, "Live cam phrasing")
	r.register("adult_hot_girls", `(?i)(hot.{0,20}girls|cewek.{0,20}seksi|gái.{0,20}xinh)`, cat, 0.9, "Adult bait phrasing")
}

// --- SUSPICIOUS URL SHAPE PATTERNS ---
func (r *Registry) registerSuspiciousURLPatterns() {
	cat := CategorySuspiciousURL

	r.register("url_shortener", `(?i)bit\.ly|tinyurl|t\.co|goo\.gl|ow\.ly`, cat, 0.3, "URL shortener service")
	r.register("url_raw_ip", `[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}`, cat, 0.3, "Raw IPv4 address host")
	r.register("url_freetld_hyphens", `(?i)[a-z0-9]+-[a-z0-9]+-[a-z0-9]+\.(tk|ml|ga|cf)`, cat, 0.3, "Hyphenated free-TLD host")
	r.register("url_secure_account", `(?i)(secure|verify|update|confirm).*(account|payment|login)`, cat, 0.3, "Security-theater account wording")
	r.register("url_long_domain", `(?i)[a-z]{20,}\.(com|net|org)`, cat, 0.3, "Unusually long domain label")
}

// --- SUSPICIOUS PATH PATTERNS ---
func (r *Registry) registerPathPatterns() {
	cat := CategoryPath

	r.register("path_auth", `/(login|secure|verify|update|confirm)`, cat, 0.2, "Authentication-themed path")
	r.register("path_prize", `/(claim|prize|winner|survey|free)`, cat, 0.2, "Prize-themed path")
	r.register("path_download", `/(download|install|setup|exe)`, cat, 0.2, "Download-themed path")
	r.register("path_random", `/[a-z0-9]{20,}`, cat, 0.2, "Long random path segment")
}

// --- SENSITIVE FORM FIELD PATTERNS ---
func (r *Registry) registerCredentialFieldPatterns() {
	cat := CategoryCredentialField

	r.register("field_password", `(?i)password`, cat, 0.4, "Password field")
	r.register("field_credit_card", `(?i)credit.?card`, cat, 0.4, "Credit card field")
	r.register("field_ssn", `(?i)ssn|social.?security`, cat, 0.4, "Social security field")
	r.register("field_bank_account", `(?i)bank.?account`, cat, 0.4, "Bank account field")
	r.register("field_pin", `(?i)pin.?code`, cat, 0.4, "PIN code field")
	r.register("field_cvv", `(?i)cvv|cvc`, cat, 0.4, "Card verification field")
	r.register("field_password_id", `(?i)kata.?sandi`, cat, 0.4, "Password field (Indonesian)")
	r.register("field_credit_card_id", `(?i)kartu.?kredit`, cat, 0.4, "Credit card field (Indonesian)")
	r.register("field_bank_id", `(?i)rekening`, cat, 0.4, "Bank account field (Indonesian)")
	r.register("field_password_vn", `(?i)mật.?khẩu`, cat, 0.4, "Password field (Vietnamese)")
	r.register("field_credit_card_vn", `(?i)thẻ.?tín.?dụng`, cat, 0.4, "Credit card field (Vietnamese)")
	r.register("field_bank_vn", `(?i)tài.?khoản.?ngân.?hàng`, cat, 0.4, "Bank account field (Vietnamese)")
}

// --- SENSITIVE INFORMATION REQUEST PATTERNS ---
func (r *Registry) registerSensitiveRequestPatterns() {
	cat := CategorySensitiveRequest

	r.register("request_sensitive", `(?i)enter.*(password|credit card|ssn|bank|account)`, cat, 0.4, "Requests sensitive information")
}

// --- FAKE UI PATTERNS ---
func (r *Registry) registerFakeUIPatterns() {
	cat := CategoryFakeUI

	r.register("fake_loading", `(?i)loading.{0,20}please.{0,20}wait`, cat, 0.3, "Fake loading screen")
	r.register("fake_payment", `(?i)processing.{0,20}payment`, cat, 0.3, "Fake payment processing")
	r.register("fake_connecting", `(?i)connecting.{0,20}to.{0,20}server`, cat, 0.3, "Fake server connection")
	r.register("fake_downloading", `(?i)downloading.{0,20}\d+%`, cat, 0.3, "Fake download progress")
	r.register("fake_security_update", `(?i)installing.{0,20}security.{0,20}update`, cat, 0.3, "Fake security update")
}

// --- URGENCY LANGUAGE PATTERNS ---
func (r *Registry) registerUrgencyPatterns() {
	cat := CategoryUrgency

	r.register("urgency_urgent", `(?i)urgent`, cat, 0.15, "Urgency word")
	r.register("urgency_limited_time", `(?i)limited time`, cat, 0.15, "Limited-time pressure")
	r.register("urgency_expires", `(?i)expires`, cat, 0.15, "Expiry pressure")
	r.register("urgency_hurry", `(?i)hurry`, cat, 0.15, "Hurry pressure")
	r.register("urgency_act_now", `(?i)act now`, cat, 0.15, "Act-now pressure")
	r.register("urgency_act_now_multi", `(?i)(bertindak.{0,20}sekarang|hành.{0,20}động.{0,20}ngay)`, cat, 0.15, "Act-now pressure (ID/VN)")
	r.register("urgency_expires_multi", `(?i)(berakhir.{0,20}hari.{0,20}ini|hết.{0,20}hạn.{0,20}sớm)`, cat, 0.15, "Expiry pressure (ID/VN)")
	r.register("urgency_only_left", `(?i)(only.{0,20}\d+.{0,20}left|hanya.{0,20}\d+.{0,20}tersisa|chỉ.{0,20}còn.{0,20}\d+)`, cat, 0.15, "Scarcity pressure")
	r.register("urgency_dont_miss", `(?i)(don.t.{0,20}miss|jangan.{0,20}lewatkan|đừng.{0,20}bỏ.{0,20}lỡ)`, cat, 0.15, "Don't-miss pressure")
}

// --- MONEY / PRIZE LANGUAGE PATTERNS ---
func (r *Registry) registerMoneyLurePatterns() {
	cat := CategoryMoneyLure

	r.register("money_free", `(?i)free money`, cat, 0.2, "Free money lure")
	r.register("money_win_cash", `(?i)win cash`, cat, 0.2, "Win cash lure")
	r.register("money_guaranteed", `(?i)guaranteed profit`, cat, 0.2, "Guaranteed profit lure")
	r.register("money_easy", `(?i)easy money`, cat, 0.2, "Easy money lure")
}

// --- MALICIOUS SCRIPT PATTERNS ---
func (r *Registry) registerScriptPatterns() {
	r.register("script_crypto_miner", `(?i)coinhive|cryptonight|monero`, CategoryCryptoMining, 0.5, "Browser crypto mining library")
	r.register("script_gambling_redirect", `(?i)(location\.href|window\.open).*(slot|casino|bet|judi)`, CategoryGamblingRedirect, 0.7, "Scripted gambling redirect")
}
