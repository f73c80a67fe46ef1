package main

const appCSS = `
*                { padding: 0; margin: 0; box-sizing: border-box; }
html, body       { background-color: #151515; color: #fff; }
main             { max-width: 1400px; width: 95%; margin: 20px auto 0 auto; }
.results         { margin-top: 40px; }
.results table   { width: 100%; }
td               { padding: 20px; }
td.word          { font-size: 2em; width: 10%; }
td.smol          { width: 8%; }
td.img-container { text-align: center; }
img              { height: 120px; width: auto; }
a                { color: #ccc; text-decoration: underline; }
.tone1           { color: #e55; }
.tone2           { color: #ea5; }
.tone3           { color: #5e5; }
.tone4           { color: #59e; }
.tone5           { color: #aaa; }
form             { position: relative; }
form input       { min-height: 2em; font-size: 2em; background-color: #333; color: #fff; outline: none; border: 1px solid #ccc; padding: 20px; width: 89%; }
form .submit     { position: absolute; top: 0; right: 0; width: 10%; margin-left: 1%; }
`

const appJS = `
(function() {
	var form = document.querySelector('form');
	if (!form) return;
	var input = form.querySelector('.val');
	var results = document.querySelector('.results');
	form.addEventListener('submit', function(e) {
		e.preventDefault();
		var q = input.value.trim();
		if (!q) return;
		var uri = '/w/' + encodeURIComponent(q);
		fetch(uri, {headers: {'X-Requested-With': 'fetch'}})
			.then(function(r) { return r.text(); })
			.then(function(html) {
				results.innerHTML = html;
				history.pushState(null, '', uri);
			});
	});
})();
`
