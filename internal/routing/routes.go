package routing

import "github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"

// Canonical is the locale-independent key of a page.
type Canonical string

// Kind selects the page template family of a route.
type Kind string

const (
	KindHome        Kind = "home"
	KindServices    Kind = "services"
	KindService     Kind = "service"
	KindBlogs       Kind = "blogs"
	KindBlog        Kind = "blog"
	KindAbout       Kind = "about"
	KindBeforeAfter Kind = "before-after"
	KindContact     Kind = "contact"
	KindTeam        Kind = "team"
)

// Entry maps one canonical route to its public slug in every locale.
type Entry struct {
	Canonical Canonical
	Kind      Kind
	Slugs     map[locale.Locale]string
}

const (
	Home        Canonical = "/"
	Services    Canonical = "/services"
	Blogs       Canonical = "/blogs"
	About       Canonical = "/about"
	BeforeAfter Canonical = "/before-after"
	Contact     Canonical = "/contact"
	Team        Canonical = "/team"
)

func page(c Canonical, k Kind, ar, en string) Entry {
	return Entry{Canonical: c, Kind: k, Slugs: map[locale.Locale]string{locale.AR: ar, locale.EN: en}}
}

func service(key, ar, en string) Entry {
	return page(Canonical("/services/"+key), KindService, "/"+ar+"/خدماتنا", "/our-services/"+en)
}

func blog(key, ar, en string) Entry {
	return page(Canonical("/blogs/"+key), KindBlog, "/"+ar+"/مقالاتنا", "/blog/"+en)
}

// Pathnames is the site's route table.
var Pathnames = []Entry{
	page(Home, KindHome, "/", "/"),
	page(About, KindAbout, "/من-نحن", "/about-us"),
	page(Services, KindServices, "/خدماتنا", "/our-services"),
	service("implant", "زراعة-الأسنان", "dental-implants"),
	service("hollywood-smile", "ابتسامة-هوليوود", "hollywood-smile"),
	service("orthodontics", "تقويم-الأسنان", "orthodontics"),
	service("whitening", "تبييض-الأسنان", "teeth-whitening"),
	service("veneers", "عدسات-الأسنان", "dental-veneers"),
	service("root-canal", "علاج-العصب", "root-canal-treatment"),
	service("crowns", "تركيبات-الأسنان", "crowns-and-bridges"),
	service("pediatric", "أسنان-الأطفال", "pediatric-dentistry"),
	service("gum-treatment", "علاج-اللثة", "gum-treatment"),
	service("cleaning", "تنظيف-الأسنان", "teeth-cleaning"),
	service("dentures", "أطقم-الأسنان", "dentures"),
	page(Blogs, KindBlogs, "/مقالاتنا", "/blog"),
	blog("hollywood-smile", "ابتسامة-هوليوود-كل-ما-تريد-معرفته", "hollywood-smile-guide"),
	blog("best-dentist-maadi", "أفضل-دكتور-اسنان-قريب-منك-في-المعادي", "best-dentist-near-you-in-maadi"),
	blog("implant-cost", "تكلفة-زراعة-الأسنان", "dental-implant-cost"),
	blog("whitening-methods", "طرق-تبييض-الأسنان", "teeth-whitening-methods"),
	blog("invisible-braces", "التقويم-الشفاف", "invisible-braces"),
	blog("veneers-vs-crowns", "الفرق-بين-العدسات-والتيجان", "veneers-vs-crowns"),
	blog("root-canal-pain", "هل-علاج-العصب-مؤلم", "is-root-canal-painful"),
	blog("kids-first-visit", "أول-زيارة-لطبيب-أسنان-الأطفال", "kids-first-dental-visit"),
	blog("bleeding-gums", "أسباب-نزيف-اللثة", "causes-of-bleeding-gums"),
	blog("tooth-sensitivity", "علاج-حساسية-الأسنان", "tooth-sensitivity-treatment"),
	blog("dental-emergency", "طوارئ-الأسنان", "dental-emergencies"),
	blog("bad-breath", "أسباب-رائحة-الفم-الكريهة", "bad-breath-causes"),
	blog("digital-smile-design", "تصميم-الابتسامة-الرقمي", "digital-smile-design"),
	blog("oral-hygiene", "نصائح-العناية-بالفم-والأسنان", "oral-hygiene-tips"),
	page(BeforeAfter, KindBeforeAfter, "/قبل-وبعد", "/before-and-after"),
	page(Team, KindTeam, "/فريقنا", "/our-team"),
	page(Contact, KindContact, "/تواصل-معنا", "/contact-us"),
}
