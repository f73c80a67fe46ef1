package pinyin

import "sort"

// inventory lists every toneless standard-Mandarin syllable. Erhua forms
// (base + "r") are generated in init, syllabic interjections live in
// their own allow-list below.
var inventory = []string{
	"a", "ai", "an", "ang", "ao",
	"e", "ei", "en", "eng", "er",
	"o", "ou",

	"ba", "bai", "ban", "bang", "bao", "bei", "ben", "beng",
	"bi", "bian", "biao", "bie", "bin", "bing", "bo", "bu",

	"pa", "pai", "pan", "pang", "pao", "pei", "pen", "peng",
	"pi", "pian", "piao", "pie", "pin", "ping", "po", "pou", "pu",

	"ma", "mai", "man", "mang", "mao", "me", "mei", "men", "meng",
	"mi", "mian", "miao", "mie", "min", "ming", "miu", "mo", "mou", "mu",

	"fa", "fan", "fang", "fei", "fen", "feng", "fo", "fou", "fu",

	"da", "dai", "dan", "dang", "dao", "de", "dei", "den", "deng",
	"di", "dia", "dian", "diao", "die", "ding", "diu",
	"dong", "dou", "du", "duan", "dui", "dun", "duo",

	"ta", "tai", "tan", "tang", "tao", "te", "tei", "teng",
	"ti", "tian", "tiao", "tie", "ting",
	"tong", "tou", "tu", "tuan", "tui", "tun", "tuo",

	"na", "nai", "nan", "nang", "nao", "ne", "nei", "nen", "neng",
	"ni", "nian", "niang", "niao", "nie", "nin", "ning", "niu",
	"nong", "nou", "nu", "nuan", "nuo", "nü", "nüe",

	"la", "lai", "lan", "lang", "lao", "le", "lei", "leng",
	"li", "lia", "lian", "liang", "liao", "lie", "lin", "ling", "liu", "lo",
	"long", "lou", "lu", "luan", "lun", "luo", "lü", "lüe",

	"ga", "gai", "gan", "gang", "gao", "ge", "gei", "gen", "geng",
	"gong", "gou", "gu", "gua", "guai", "guan", "guang", "gui", "gun", "guo",

	"ka", "kai", "kan", "kang", "kao", "ke", "kei", "ken", "keng",
	"kong", "kou", "ku", "kua", "kuai", "kuan", "kuang", "kui", "kun", "kuo",

	"ha", "hai", "han", "hang", "hao", "he", "hei", "hen", "heng",
	"hong", "hou", "hu", "hua", "huai", "huan", "huang", "hui", "hun", "huo",

	"ji", "jia", "jian", "jiang", "jiao", "jie", "jin", "jing", "jiong", "jiu",
	"ju", "juan", "jue", "jun",

	"qi", "qia", "qian", "qiang", "qiao", "qie", "qin", "qing", "qiong", "qiu",
	"qu", "quan", "que", "qun",

	"xi", "xia", "xian", "xiang", "xiao", "xie", "xin", "xing", "xiong", "xiu",
	"xu", "xuan", "xue", "xun",

	"zha", "zhai", "zhan", "zhang", "zhao", "zhe", "zhei", "zhen", "zheng", "zhi",
	"zhong", "zhou", "zhu", "zhua", "zhuai", "zhuan", "zhuang", "zhui", "zhun", "zhuo",

	"cha", "chai", "chan", "chang", "chao", "che", "chen", "cheng", "chi",
	"chong", "chou", "chu", "chua", "chuai", "chuan", "chuang", "chui", "chun", "chuo",

	"sha", "shai", "shan", "shang", "shao", "she", "shei", "shen", "sheng", "shi",
	"shou", "shu", "shua", "shuai", "shuan", "shuang", "shui", "shun", "shuo",

	"ran", "rang", "rao", "re", "ren", "reng", "ri",
	"rong", "rou", "ru", "rua", "ruan", "rui", "run", "ruo",

	"za", "zai", "zan", "zang", "zao", "ze", "zei", "zen", "zeng", "zi",
	"zong", "zou", "zu", "zuan", "zui", "zun", "zuo",

	"ca", "cai", "can", "cang", "cao", "ce", "cei", "cen", "ceng", "ci",
	"cong", "cou", "cu", "cuan", "cui", "cun", "cuo",

	"sa", "sai", "san", "sang", "sao", "se", "sen", "seng", "si",
	"song", "sou", "su", "suan", "sui", "sun", "suo",

	"ya", "yan", "yang", "yao", "ye", "yi", "yin", "ying", "yo",
	"yong", "you", "yu", "yuan", "yue", "yun",

	"wa", "wai", "wan", "wang", "wei", "wen", "weng", "wo", "wu",
}

// interjections are the nucleus-less syllables that bypass the vowel
// inventory: they are valid only as a whole syllable.
var interjections = map[string]bool{
	"m": true, "n": true, "ng": true, "hm": true, "hng": true, "r": true,
}

var (
	valid   map[string]bool
	ordered []string
)

func init() {
	valid = make(map[string]bool, 2*len(inventory)+len(interjections))
	for _, s := range inventory {
		valid[s] = true
	}
	for _, s := range inventory {
		if s[len(s)-1] != 'r' {
			valid[s+"r"] = true
		}
	}
	for s := range interjections {
		valid[s] = true
	}

	ordered = make([]string, 0, len(valid))
	for s := range valid {
		ordered = append(ordered, s)
	}
	// longest first so greedy candidate enumeration prefers maximal
	// syllables; lexicographic within a length keeps runs deterministic.
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) > len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})
}

// Valid reports whether base is a toneless syllable, erhua form or
// syllabic interjection.
func Valid(base string) bool { return valid[base] }
